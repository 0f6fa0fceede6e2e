// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"testing"

	"github.com/aclements/dwarfalign/ghidrarecord"
	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64(v uint64) *uint64 { return &v }

func TestResolveRebasesByImageBase(t *testing.T) {
	report := ghidrarecord.Report{ImageBase: 0x400000}
	functions := []ghidrarecord.Function{
		{FunctionID: "g1", EntryVA: 0x401000, BodyStartVA: u64(0x401000), BodyEndVA: u64(0x401010)},
	}
	table := BuildGhidraTable(report, functions, nil)

	fn := oracledwarf.Function{ID: "d1", Ranges: []oracledwarf.AddrRange{{Low: 0x1000, High: 0x1010}}}
	res := Resolve(fn, table, nil)
	require.NotNil(t, res.GhidraFunction)
	assert.Equal(t, "g1", res.GhidraFunction.FunctionID)
	assert.Empty(t, res.Reasons)
}

func TestResolveAmbiguousOnMultipleDistinctMatches(t *testing.T) {
	report := ghidrarecord.Report{ImageBase: 0}
	functions := []ghidrarecord.Function{
		{FunctionID: "g1", EntryVA: 0x1000, BodyStartVA: u64(0x1000), BodyEndVA: u64(0x1008)},
		{FunctionID: "g2", EntryVA: 0x2000, BodyStartVA: u64(0x2000), BodyEndVA: u64(0x2008)},
	}
	table := BuildGhidraTable(report, functions, nil)

	fn := oracledwarf.Function{ID: "d1", Ranges: []oracledwarf.AddrRange{
		{Low: 0x1000, High: 0x1008},
		{Low: 0x2000, High: 0x2008},
	}}
	res := Resolve(fn, table, nil)
	assert.Nil(t, res.GhidraFunction)
	assert.Equal(t, []string{ReasonAddressAmbiguous}, res.Reasons)
}

func TestResolveNoMatchWhenNoBodyContainsAddress(t *testing.T) {
	table := BuildGhidraTable(ghidrarecord.Report{}, nil, nil)
	fn := oracledwarf.Function{ID: "d1", Ranges: []oracledwarf.AddrRange{{Low: 0x5000, High: 0x5010}}}
	res := Resolve(fn, table, nil)
	assert.Nil(t, res.GhidraFunction)
	assert.Equal(t, []string{ReasonNoGhidraMatch}, res.Reasons)
}

func TestResolveAttachesCFGShapeOfMatchedFunction(t *testing.T) {
	report := ghidrarecord.Report{ImageBase: 0x400000}
	functions := []ghidrarecord.Function{
		{FunctionID: "g1", EntryVA: 0x401000, BodyStartVA: u64(0x401000), BodyEndVA: u64(0x401010)},
	}
	cfgs := []ghidrarecord.CFG{
		{FunctionID: "g1", BBCount: 3, EdgeCount: 0, Cyclomatic: 0, CFGCompleteness: "LOW"},
	}
	table := BuildGhidraTable(report, functions, cfgs)

	fn := oracledwarf.Function{ID: "d1", Ranges: []oracledwarf.AddrRange{{Low: 0x1000, High: 0x1010}}}
	res := Resolve(fn, table, nil)
	require.NotNil(t, res.CFG)
	assert.Equal(t, 3, res.CFG.BBCount)
	assert.Equal(t, 0, res.CFG.EdgeCount)
	assert.Equal(t, 0, res.CFG.Cyclomatic)
	assert.Equal(t, "LOW", res.CFG.CFGCompleteness)
}

func TestResolveExcludesAuxFunctions(t *testing.T) {
	table := BuildGhidraTable(ghidrarecord.Report{}, nil, nil)
	name := "_start"
	fn := oracledwarf.Function{ID: "d1", Name: &name}
	res := Resolve(fn, table, AuxNameSet([]string{"_start"}))
	assert.Equal(t, []string{ReasonAuxFunction}, res.Reasons)
}

func TestResolveUsesMidpointWhenBodyOnlyCoversPrefix(t *testing.T) {
	report := ghidrarecord.Report{}
	functions := []ghidrarecord.Function{
		{FunctionID: "g1", EntryVA: 0x1000, BodyStartVA: u64(0x1000), BodyEndVA: u64(0x1004)},
	}
	table := BuildGhidraTable(report, functions, nil)

	// Range extends beyond g1's body; the midpoint query (0x1004) falls
	// just past g1's half-open body and finds no other function, so the
	// join still resolves uniquely to g1.
	fn := oracledwarf.Function{ID: "d1", Ranges: []oracledwarf.AddrRange{{Low: 0x1000, High: 0x1008}}}
	res := Resolve(fn, table, nil)
	require.NotNil(t, res.GhidraFunction)
	assert.Equal(t, "g1", res.GhidraFunction.FunctionID)
}
