// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"sort"

	"github.com/aclements/dwarfalign/ghidrarecord"
	"github.com/aclements/dwarfalign/joindwarfts"
	"github.com/aclements/dwarfalign/oracledwarf"
)

// BuildJoinedFunctionRecord assembles one joined_functions.jsonl row
// from a DWARF function's oracle verdict, its line-evidence alignment
// pair, and its address-join resolution (spec.md §4.12).
func BuildJoinedFunctionRecord(dwarfFn oracledwarf.FunctionRecord, pair joindwarfts.AlignmentPairRecord, resolved ResolvedJoin) JoinedFunctionRecord {
	rec := JoinedFunctionRecord{
		DWARFFunctionID:  dwarfFn.ID,
		Name:             dwarfFn.Name,
		AlignmentVerdict: pair.Verdict,
		TSFunctionID:     pair.TSFunctionID,
		OverlapRatio:     pair.OverlapRatio,
	}

	reasons := append([]string{}, pair.Reasons...)
	reasons = append(reasons, resolved.Reasons...)
	rec.Reasons = reasons

	if resolved.GhidraFunction != nil {
		id := resolved.GhidraFunction.FunctionID
		va := resolved.GhidraFunction.EntryVA
		rec.GhidraFunctionID = &id
		rec.GhidraEntryVA = &va
	}

	if resolved.CFG != nil {
		bb := resolved.CFG.BBCount
		edges := resolved.CFG.EdgeCount
		cyclo := resolved.CFG.Cyclomatic
		completeness := resolved.CFG.CFGCompleteness
		rec.CFGBBCount = &bb
		rec.CFGEdgeCount = &edges
		rec.CFGCyclomatic = &cyclo
		rec.CFGCompleteness = &completeness
	}

	rec.HighConfidence = isHighConfidence(dwarfFn, pair, resolved)
	return rec
}

// isHighConfidence implements the diagnostics reporter's high-
// confidence filter: MATCH, no PC_LINE_GAP, no WARN, and a resolved
// Ghidra join (spec.md §4.12).
func isHighConfidence(dwarfFn oracledwarf.FunctionRecord, pair joindwarfts.AlignmentPairRecord, resolved ResolvedJoin) bool {
	if pair.Verdict != string(joindwarfts.Match) {
		return false
	}
	if dwarfFn.Verdict != "ACCEPT" {
		return false
	}
	if resolved.GhidraFunction == nil {
		return false
	}
	for _, r := range pair.Reasons {
		if r == joindwarfts.ReasonPCLineGap {
			return false
		}
	}
	return true
}

// BuildJoinedVariableRecord assembles one joined_variables.jsonl row.
func BuildJoinedVariableRecord(dwarfFunctionID string, v ghidrarecord.Variable) JoinedVariableRecord {
	return JoinedVariableRecord{
		VarID:            v.VarID,
		DWARFFunctionID:  dwarfFunctionID,
		GhidraFunctionID: v.FunctionID,
		Name:             v.Name,
		DataType:         v.DataType,
		StorageLoc:       v.StorageLoc,
	}
}

// SortJoinedFunctions sorts rows by DWARF function id, then by Ghidra
// entry VA (spec.md §4.12).
func SortJoinedFunctions(rows []JoinedFunctionRecord) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DWARFFunctionID != rows[j].DWARFFunctionID {
			return rows[i].DWARFFunctionID < rows[j].DWARFFunctionID
		}
		ai, aj := rows[i].GhidraEntryVA, rows[j].GhidraEntryVA
		switch {
		case ai == nil && aj == nil:
			return false
		case ai == nil:
			return true
		case aj == nil:
			return false
		default:
			return *ai < *aj
		}
	})
}

// SortJoinedVariables sorts rows by DWARF function id, then by Ghidra
// function id (spec.md §4.12).
func SortJoinedVariables(rows []JoinedVariableRecord) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DWARFFunctionID != rows[j].DWARFFunctionID {
			return rows[i].DWARFFunctionID < rows[j].DWARFFunctionID
		}
		return rows[i].GhidraFunctionID < rows[j].GhidraFunctionID
	})
}

// AccumulateReasonCounts tabulates every reason string across rows
// into a closed histogram.
func AccumulateReasonCounts(rows []JoinedFunctionRecord) ReasonCounts {
	counts := make(ReasonCounts)
	for _, r := range rows {
		for _, reason := range r.Reasons {
			counts[reason]++
		}
	}
	return counts
}
