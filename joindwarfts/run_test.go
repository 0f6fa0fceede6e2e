// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import (
	"testing"

	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/oraclets"
	"github.com/aclements/dwarfalign/profile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsStaleDWARFSchema(t *testing.T) {
	report := oracledwarf.Report{SchemaVer: "0.1"}
	p := profile.Default()
	_, err := Run(report, nil, oraclets.SchemaVersion, nil, p, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunRejectsStaleTSSchema(t *testing.T) {
	report := oracledwarf.Report{SchemaVer: oracledwarf.SchemaVersion}
	p := profile.Default()
	_, err := Run(report, nil, "0.0", nil, p, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunProducesSortedMatchedPair(t *testing.T) {
	report := oracledwarf.Report{SchemaVer: oracledwarf.SchemaVersion, BinaryPath: "a.out"}
	fns := []oracledwarf.FunctionRecord{
		{ID: "cu:0:die:1", Verdict: "ACCEPT", LineRows: []oracledwarf.LineRowRecord{{File: "main.c", Line: 1, Count: 2}}},
		{ID: "cu:0:die:0", Verdict: "REJECT"},
	}
	tu := TU{
		Path:   "t.i",
		Source: []byte("# 1 \"main.c\"\nint f() {}\n"),
		SHA256: "deadbeef",
		Functions: []oraclets.FunctionRecord{
			{ID: "t.i:f", TUPath: "t.i", ContextHash: "h", Span: oraclets.SpanRecord{StartLine: 2, EndLine: 2}},
		},
	}
	p := profile.Default()
	res, err := Run(report, fns, oraclets.SchemaVersion, []TU{tu}, p, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, res.Pairs, 1)
	assert.Equal(t, "cu:0:die:1", res.Pairs[0].DWARFFunctionID)
	assert.Equal(t, string(Match), res.Pairs[0].Verdict)
	assert.Equal(t, 1, res.Report.Counts.Match)
	assert.Equal(t, 1, res.Report.Counts.NonTarget)
	assert.Equal(t, "deadbeef", res.Report.TUHashes["t.i"])
}
