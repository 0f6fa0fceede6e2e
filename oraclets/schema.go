// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

// SchemaVersion is this package's output schema version.
// join_dwarf_ts enforces a floor of 0.1 per spec.md §4.14.
const SchemaVersion = "0.1"

// SpanRecord is the JSON rendering of a Span.
type SpanRecord struct {
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

func spanRecord(s Span) SpanRecord {
	return SpanRecord{s.StartByte, s.EndByte, s.StartLine, s.EndLine}
}

// StructuralNodeRecord is one emitted structural node.
type StructuralNodeRecord struct {
	Kind  string     `json:"kind"`
	Span  SpanRecord `json:"span"`
	Hash  string     `json:"hash"`
	Depth int        `json:"depth"`
	Flags []string   `json:"flags"`
}

// FunctionRecord is one emitted TS function entry.
type FunctionRecord struct {
	ID          string  `json:"id"`
	TUPath      string  `json:"tu_path"`
	Name        *string `json:"name"`
	ContextHash string  `json:"context_hash"`
	NodeHashRaw string  `json:"node_hash_raw"`

	Span     SpanRecord `json:"span"`
	Preamble SpanRecord `json:"preamble"`
	Sig      SpanRecord `json:"signature"`
	Body     SpanRecord `json:"body"`

	Verdict string   `json:"verdict"`
	Reasons []string `json:"reasons"`

	Nodes []StructuralNodeRecord `json:"nodes"`
}

// Recipe is one entry of extraction_recipes.json: the two canonical
// byte-span extraction recipes a downstream consumer uses to slice
// the source of a function, optionally with its file preamble.
type Recipe struct {
	FunctionID                string     `json:"function_id"`
	FunctionOnlySpan          SpanRecord `json:"function_only_span"`
	FunctionWithPreambleSpan  SpanRecord `json:"function_with_file_preamble_span"`
}

// BuildFunctionRecord assembles the emitted record and recipe for one
// function.
func BuildFunctionRecord(tuPath string, fn Function, nodes []StructuralNode, verdict Verdict, reasons []string) (FunctionRecord, Recipe) {
	rec := FunctionRecord{
		ID:          fn.ID,
		TUPath:      tuPath,
		Name:        fn.Name,
		ContextHash: fn.ContextHash,
		NodeHashRaw: fn.RawHash,
		Span:        spanRecord(fn.Span),
		Preamble:    spanRecord(fn.Preamble),
		Sig:         spanRecord(fn.Sig),
		Body:        spanRecord(fn.Body),
		Verdict:     string(verdict),
		Reasons:     reasons,
	}
	for _, n := range nodes {
		rec.Nodes = append(rec.Nodes, StructuralNodeRecord{n.Kind, spanRecord(n.Span), n.Hash, n.Depth, n.Flags})
	}

	recipe := Recipe{
		FunctionID:               fn.ID,
		FunctionOnlySpan:         spanRecord(fn.Span),
		FunctionWithPreambleSpan: SpanRecord{0, fn.Span.EndByte, 1, fn.Span.EndLine},
	}
	return rec, recipe
}

// Report is oracle_ts_report.json: one entry per TU.
type Report struct {
	ProfileID   string      `json:"profile_id"`
	SchemaVer   string      `json:"schema_version"`
	GeneratedAt string      `json:"generated_at"`
	TUs         []TUSummary `json:"tus"`
}

// TUSummary is one TU's gate outcome and function counts.
type TUSummary struct {
	TUPath  string   `json:"tu_path"`
	TUSHA   string   `json:"tu_sha256"`
	Verdict string   `json:"verdict"`
	Reasons []string `json:"reasons"`
	Counts  struct {
		Accept int `json:"accept"`
		Warn   int `json:"warn"`
		Reject int `json:"reject"`
	} `json:"counts"`
}
