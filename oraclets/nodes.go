// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// structuralKinds is the closed allowlist of node kinds the node
// indexer records (spec.md §3).
var structuralKinds = map[string]bool{
	"compound_statement": true,
	"if_statement":        true,
	"for_statement":       true,
	"while_statement":     true,
	"do_statement":        true,
	"switch_statement":    true,
	"return_statement":    true,
	"goto_statement":      true,
	"labeled_statement":   true,
}

// StructuralNode is one recorded control-flow node inside a function.
type StructuralNode struct {
	Kind  string
	Span  Span
	Hash  string
	Depth int
	Flags []string
}

// IndexNodes depth-first walks fn's subtree recording every node
// whose kind is in the structural allowlist, with its depth from the
// function root (the function_definition node itself is depth 0).
func IndexNodes(tu *TranslationUnit, fn Function, deepNestingThreshold int) []StructuralNode {
	var out []StructuralNode
	var walk func(n *sitter.Node, depth int)
	walk = func(n *sitter.Node, depth int) {
		if structuralKinds[n.Type()] {
			sp := span(n)
			sn := StructuralNode{
				Kind:  n.Type(),
				Span:  sp,
				Hash:  rawHash(tu.Source[sp.StartByte:sp.EndByte]),
				Depth: depth,
			}
			if depth >= deepNestingThreshold {
				sn.Flags = append(sn.Flags, "DEEP_NESTING")
			}
			out = append(out, sn)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), depth+1)
		}
	}
	walk(fn.Node, 0)
	return out
}

// HasDeepNesting reports whether any structural node in nodes carries
// the DEEP_NESTING flag.
func HasDeepNesting(nodes []StructuralNode) bool {
	for _, n := range nodes {
		for _, f := range n.Flags {
			if f == "DEEP_NESTING" {
				return true
			}
		}
	}
	return false
}

// anonymousAggregateKinds are the specifier kinds whose body implies
// an aggregate definition (struct/union/enum).
var anonymousAggregateKinds = map[string]bool{
	"struct_specifier": true,
	"union_specifier":  true,
	"enum_specifier":   true,
}

// HasAnonymousAggregate scans fn's subtree (scoped to the function, to
// avoid false positives from sibling functions) for a struct/union/enum
// specifier with a body but no name (spec.md §4.7).
func HasAnonymousAggregate(fn Function) bool {
	found := false
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found {
			return
		}
		if anonymousAggregateKinds[n.Type()] {
			hasBody := n.ChildByFieldName("body") != nil
			hasName := n.ChildByFieldName("name") != nil
			if hasBody && !hasName {
				found = true
				return
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(fn.Node)
	return found
}

// nonstandardExtensionSubstrings are substring-matched against a
// function's raw text (spec.md §4.7).
var nonstandardExtensionSubstrings = []string{
	"__attribute__", "__asm__", "__extension__", "__typeof__", "__builtin_", "_Pragma",
}

// HasNonstandardExtension reports whether fn's raw text contains any
// of the GCC/Clang extension substrings.
func HasNonstandardExtension(tu *TranslationUnit, fn Function) bool {
	raw := string(tu.Source[fn.Span.StartByte:fn.Span.EndByte])
	for _, s := range nonstandardExtensionSubstrings {
		if strings.Contains(raw, s) {
			return true
		}
	}
	return false
}
