// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSingleFile(t *testing.T) {
	rows := map[EvidenceKey]int{
		{"main.c", 3}: 2,
		{"main.c", 4}: 1,
	}
	ev := summarize(rows)

	require.Equal(t, 3, ev.NLineRows)
	assert.Equal(t, "main.c", ev.DominantFile)
	assert.Equal(t, 1.0, ev.DominantFileRatio)
	assert.Equal(t, 3, ev.LineMin)
	assert.Equal(t, 4, ev.LineMax)
	assert.Equal(t, map[string]int{"main.c": 3}, ev.FileRowCounts)
}

func TestSummarizeMultiFileRatioAndDominantFileScopedLines(t *testing.T) {
	rows := map[EvidenceKey]int{
		{"main.c", 10}:              3,
		{"/usr/include/stdio.h", 5}: 1,
	}
	ev := summarize(rows)

	assert.Equal(t, "main.c", ev.DominantFile)
	assert.Equal(t, 0.75, ev.DominantFileRatio)
	// line_min/line_max computed over the dominant file only.
	assert.Equal(t, 10, ev.LineMin)
	assert.Equal(t, 10, ev.LineMax)
}

func TestDominantFileTieBreaksLexicographically(t *testing.T) {
	counts := map[string]int{"b.c": 2, "a.c": 2}
	assert.Equal(t, "a.c", dominantFile(counts))
}

func TestSummarizeEmptyIsZeroValue(t *testing.T) {
	ev := summarize(map[EvidenceKey]int{})
	assert.Equal(t, 0, ev.NLineRows)
	assert.Equal(t, "", ev.DominantFile)
}

func TestInRanges(t *testing.T) {
	ranges := []AddrRange{{0x1000, 0x1010}, {0x2000, 0x2004}}
	assert.True(t, inRanges(ranges, 0x1000))
	assert.False(t, inRanges(ranges, 0x1010))
	assert.True(t, inRanges(ranges, 0x2003))
	assert.False(t, inRanges(ranges, 0x3000))
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 0.6667, round4(2.0/3.0))
}
