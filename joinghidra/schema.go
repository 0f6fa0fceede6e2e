// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

// SchemaVersion is this package's output schema version.
const SchemaVersion = "0.1"

// JoinedFunctionRecord is one row of joined_functions.jsonl: a DWARF
// function joined against its tree-sitter alignment pair and its
// resolved Ghidra entry, or the reasons no join exists.
type JoinedFunctionRecord struct {
	DWARFFunctionID string `json:"dwarf_function_id"`
	Name            *string `json:"name"`

	AlignmentVerdict string   `json:"alignment_verdict"`
	TSFunctionID     *string  `json:"ts_function_id"`
	OverlapRatio     *float64 `json:"overlap_ratio"`

	GhidraFunctionID *string `json:"ghidra_function_id"`
	GhidraEntryVA    *uint64 `json:"ghidra_entry_va"`

	CFGBBCount      *int    `json:"cfg_bb_count"`
	CFGEdgeCount    *int    `json:"cfg_edge_count"`
	CFGCyclomatic   *int    `json:"cfg_cyclomatic"`
	CFGCompleteness *string `json:"cfg_completeness"`

	Reasons []string `json:"reasons"`

	HighConfidence bool `json:"high_confidence"`
}

// JoinedVariableRecord is one row of joined_variables.jsonl: a Ghidra
// variable attached to its joined function.
type JoinedVariableRecord struct {
	VarID            string `json:"var_id"`
	DWARFFunctionID  string `json:"dwarf_function_id"`
	GhidraFunctionID string `json:"ghidra_function_id"`
	Name             string `json:"name"`
	DataType         string `json:"data_type"`
	StorageLoc       string `json:"storage_loc"`
}

// ReasonCounts is a closed histogram of every reason string attached
// to any joined function row.
type ReasonCounts map[string]int

// Report is join_report.json.
type Report struct {
	ProfileID   string `json:"profile_id"`
	SchemaVer   string `json:"schema_version"`
	GeneratedAt string `json:"generated_at"`
	BinaryPath  string `json:"binary_path"`

	Counts struct {
		Match     int `json:"match"`
		Ambiguous int `json:"ambiguous"`
		NoMatch   int `json:"no_match"`
		NonTarget int `json:"non_target"`
	} `json:"counts"`

	ReasonCounts ReasonCounts `json:"reason_counts"`
	HighConfN    int          `json:"high_confidence_count"`
}
