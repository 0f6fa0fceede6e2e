// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import (
	"strings"
	"testing"

	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/oraclets"
	"github.com/aclements/dwarfalign/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsFunc(id, tu string, startLine, endLine int, ctxHash string) oraclets.FunctionRecord {
	return oraclets.FunctionRecord{
		ID:          id,
		TUPath:      tu,
		ContextHash: ctxHash,
		Span:        oraclets.SpanRecord{StartByte: 0, EndByte: 100, StartLine: startLine, EndLine: endLine},
	}
}

func TestScoreCandidatesFullOverlapYieldsUniqueBest(t *testing.T) {
	dwarfFn := oracledwarf.FunctionRecord{
		ID: "cu:0:die:0",
		LineRows: []oracledwarf.LineRowRecord{
			{File: "main.c", Line: 10, Count: 3},
			{File: "main.c", Line: 11, Count: 1},
		},
	}
	om, err := BuildOriginMapFromLines("t.i", []string{
		`# 10 "main.c"`,
		"int f() {",
		"return 1;",
	}, nil)
	require.NoError(t, err)

	tsByTU := map[string][]oraclets.FunctionRecord{
		"t.i": {tsFunc("t.i:f", "t.i", 2, 3, "hash1")},
	}
	origins := map[string]*OriginMap{"t.i": om}

	p := profile.Default()
	pair := ScoreCandidates(dwarfFn, tsByTU, origins, p)
	assert.Equal(t, Match, pair.Verdict)
	assert.Contains(t, pair.Reasons, ReasonUniqueBest)
	require.NotNil(t, pair.Best)
	assert.Equal(t, 1.0, pair.Best.OverlapRatio)
}

func TestScoreCandidatesNoOverlapYieldsNoMatch(t *testing.T) {
	dwarfFn := oracledwarf.FunctionRecord{
		ID:       "cu:0:die:0",
		LineRows: []oracledwarf.LineRowRecord{{File: "main.c", Line: 10, Count: 1}},
	}
	p := profile.Default()
	pair := ScoreCandidates(dwarfFn, nil, nil, p)
	assert.Equal(t, NoMatch, pair.Verdict)
	assert.Equal(t, []string{ReasonNoCandidates}, pair.Reasons)
}

func TestScoreCandidatesNearTiesProduceAmbiguous(t *testing.T) {
	dwarfFn := oracledwarf.FunctionRecord{
		ID: "cu:0:die:0",
		LineRows: []oracledwarf.LineRowRecord{
			{File: "main.c", Line: 1, Count: 10},
		},
	}
	omA, err := BuildOriginMapFromLines("a.i", []string{`# 1 "main.c"`, "int f() {}"}, nil)
	require.NoError(t, err)
	omB, err := BuildOriginMapFromLines("b.i", []string{`# 1 "main.c"`, "int f() {}"}, nil)
	require.NoError(t, err)

	tsByTU := map[string][]oraclets.FunctionRecord{
		"a.i": {tsFunc("a.i:f", "a.i", 2, 2, "hashA")},
		"b.i": {tsFunc("b.i:f", "b.i", 2, 2, "hashB")},
	}
	origins := map[string]*OriginMap{"a.i": omA, "b.i": omB}

	p := profile.Default()
	pair := ScoreCandidates(dwarfFn, tsByTU, origins, p)
	assert.Equal(t, Ambiguous, pair.Verdict)
	assert.Contains(t, pair.Reasons, ReasonNearTie)
}

// BuildOriginMapFromLines is a test helper mirroring BuildOriginMap
// over an in-memory line slice.
func BuildOriginMapFromLines(path string, lines []string, excluded []string) (*OriginMap, error) {
	src := ""
	for i, l := range lines {
		if i > 0 {
			src += "\n"
		}
		src += l
	}
	return BuildOriginMap(path, strings.NewReader(src), excluded)
}
