// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"github.com/aclements/dwarfalign/ghidrarecord"
	"github.com/aclements/dwarfalign/oracledwarf"
)

// Address join reasons (spec.md §4.10).
const (
	ReasonAddressAmbiguous = "ADDRESS_AMBIGUOUS"
	ReasonNoGhidraMatch    = "NO_GHIDRA_MATCH"
	ReasonAuxFunction      = "AUX_FUNCTION"
)

// GhidraTable indexes one binary's Ghidra function records by rebased
// entry virtual address and by body interval, plus the per-function
// CFG shape Ghidra's decompiler delivered alongside them.
type GhidraTable struct {
	ImageBase uint64
	ByEntryVA map[uint64]ghidrarecord.Function
	ByID      map[string]ghidrarecord.Function
	CFGByID   map[string]ghidrarecord.CFG
	Bodies    *BodyIndex
}

// BuildGhidraTable rebases every Ghidra function's addresses by
// report.ImageBase and indexes them by entry VA and body interval
// (spec.md §4.10), and indexes the delivered cfg.jsonl rows by
// function_id so the join can attach each resolved function's CFG
// shape.
func BuildGhidraTable(report ghidrarecord.Report, functions []ghidrarecord.Function, cfgs []ghidrarecord.CFG) *GhidraTable {
	t := &GhidraTable{
		ImageBase: report.ImageBase,
		ByEntryVA: make(map[uint64]ghidrarecord.Function, len(functions)),
		ByID:      make(map[string]ghidrarecord.Function, len(functions)),
		CFGByID:   make(map[string]ghidrarecord.CFG, len(cfgs)),
		Bodies:    &BodyIndex{},
	}
	for _, cfg := range cfgs {
		t.CFGByID[cfg.FunctionID] = cfg
	}
	for _, fn := range functions {
		rebased := fn
		rebased.EntryVA = fn.EntryVA - report.ImageBase
		if fn.BodyStartVA != nil {
			lo := *fn.BodyStartVA - report.ImageBase
			rebased.BodyStartVA = &lo
		}
		if fn.BodyEndVA != nil {
			hi := *fn.BodyEndVA - report.ImageBase
			rebased.BodyEndVA = &hi
		}
		t.ByEntryVA[rebased.EntryVA] = rebased
		t.ByID[fn.FunctionID] = rebased

		if rebased.BodyStartVA != nil && rebased.BodyEndVA != nil && *rebased.BodyEndVA > *rebased.BodyStartVA {
			t.Bodies.Add(*rebased.BodyStartVA, *rebased.BodyEndVA, fn.FunctionID)
		}
	}
	return t
}

// ResolvedJoin is one DWARF function's address-join outcome.
type ResolvedJoin struct {
	DWARFFunctionID string
	GhidraFunction  *ghidrarecord.Function
	CFG             *ghidrarecord.CFG
	Reasons         []string
}

// Resolve implements spec.md §4.10 for one DWARF function: walk its
// ranges, query the interval index by each range's low address and,
// when the matched body only covers a prefix of the range, the
// range's midpoint too, accumulating candidate Ghidra identities. A
// resolved join requires a single unique candidate across every
// range.
func Resolve(fn oracledwarf.Function, t *GhidraTable, auxNames map[string]bool) ResolvedJoin {
	res := ResolvedJoin{DWARFFunctionID: fn.ID}

	if fn.Name != nil && auxNames[*fn.Name] {
		res.Reasons = []string{ReasonAuxFunction}
		return res
	}

	candidates := make(map[string]bool)
	for _, r := range fn.Ranges {
		id, ok := t.Bodies.At(r.Low)
		if ok {
			candidates[id] = true
			if onlyCoversPrefix(t, id, r) {
				if midID, ok := t.Bodies.At(midpoint(r)); ok {
					candidates[midID] = true
				}
			}
		}
	}

	switch len(candidates) {
	case 0:
		res.Reasons = []string{ReasonNoGhidraMatch}
	case 1:
		var id string
		for c := range candidates {
			id = c
		}
		if gf, ok := t.ByID[id]; ok {
			res.GhidraFunction = &gf
		}
		if cfg, ok := t.CFGByID[id]; ok {
			res.CFG = &cfg
		}
	default:
		res.Reasons = []string{ReasonAddressAmbiguous}
	}
	return res
}

func midpoint(r oracledwarf.AddrRange) uint64 {
	return r.Low + (r.High-r.Low)/2
}

// onlyCoversPrefix reports whether the Ghidra body matched at r.Low
// ends before r.High, meaning the matched body covers only a prefix
// of the DWARF range and the range's remainder may belong to a
// different (or the same) Ghidra function, per spec.md §4.10.
func onlyCoversPrefix(t *GhidraTable, matchedID string, r oracledwarf.AddrRange) bool {
	gf, ok := t.ByID[matchedID]
	if !ok || gf.BodyEndVA == nil {
		return false
	}
	return *gf.BodyEndVA < r.High
}

// AuxNameSet renders a configured aux-function-name list as a lookup
// set.
func AuxNameSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
