// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFunctionRecordSortsLineRows(t *testing.T) {
	fn := Function{ID: "cu:0:die:10", Name: name("add"), Ranges: []AddrRange{{0x1000, 0x1010}}}
	ev := Evidence{
		LineRows: map[EvidenceKey]int{
			{"main.c", 5}: 1,
			{"main.c", 3}: 2,
			{"aux.c", 9}:  1,
		},
		FileRowCounts: map[string]int{"main.c": 3, "aux.c": 1},
		DominantFile:  "main.c",
		NLineRows:     4,
	}
	rec := BuildFunctionRecord(fn, ev, Accept, nil)

	assert.Equal(t, []LineRowRecord{
		{"aux.c", 9, 1},
		{"main.c", 3, 2},
		{"main.c", 5, 1},
	}, rec.LineRows)
	assert.Equal(t, []FileRowCountRecord{
		{"aux.c", 1},
		{"main.c", 3},
	}, rec.FileRowCounts)
}

func TestBuildFunctionRecordRejectHasEmptyEvidence(t *testing.T) {
	fn := Function{ID: "cu:0:die:10", IsDeclaration: true}
	rec := BuildFunctionRecord(fn, Evidence{}, Reject, []string{ReasonDeclarationOnly})

	assert.Empty(t, rec.LineRows)
	assert.Empty(t, rec.FileRowCounts)
	assert.Equal(t, []string{ReasonDeclarationOnly}, rec.Reasons)
}
