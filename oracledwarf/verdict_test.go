// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"testing"

	"github.com/aclements/dwarfalign/profile"
	"github.com/stretchr/testify/assert"
)

func name(s string) *string { return &s }

func TestGateBinaryReasons(t *testing.T) {
	cases := []struct {
		name    string
		b       *Binary
		parse   error
		want    []string
	}{
		{"parse error short-circuits", &Binary{}, assertErr, []string{ReasonDWARFParse}},
		{"clean binary", &Binary{
			Class: 2, Machine: 62, // elf.ELFCLASS64, elf.EM_X86_64 numeric values
			Sections: map[string]bool{".debug_info": true, ".debug_line": true},
		}, nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := GateBinary(c.b, c.parse)
			assert.Equal(t, c.want, got)
		})
	}
}

var assertErr = assertError("boom")

type assertError string

func (e assertError) Error() string { return string(e) }

func TestGateBinaryMissingDebugLine(t *testing.T) {
	b := &Binary{Class: 2, Machine: 62, Sections: map[string]bool{".debug_info": true}}
	got := GateBinary(b, nil)
	assert.Equal(t, []string{ReasonNoDebugLine}, got)
}

func TestGateBinaryUnsupportedArch(t *testing.T) {
	b := &Binary{Class: 1, Machine: 3, Sections: map[string]bool{".debug_info": true, ".debug_line": true}}
	got := GateBinary(b, nil)
	assert.Equal(t, []string{ReasonUnsupportedArc}, got)
}

func TestJudgeFunctionDeclarationOnlyRejects(t *testing.T) {
	p := profile.Default()
	fn := Function{IsDeclaration: true}
	verdict, reasons := JudgeFunction(fn, Evidence{}, p)
	assert.Equal(t, Reject, verdict)
	assert.Contains(t, reasons, ReasonDeclarationOnly)
	assert.Contains(t, reasons, ReasonMissingRange)
}

func TestJudgeFunctionAcceptsCleanFunction(t *testing.T) {
	p := profile.Default()
	fn := Function{
		Name:   name("add"),
		Ranges: []AddrRange{{0x1000, 0x1010}},
	}
	ev := Evidence{NLineRows: 4, DominantFile: "main.c", DominantFileRatio: 1.0}
	verdict, reasons := JudgeFunction(fn, ev, p)
	assert.Equal(t, Accept, verdict)
	assert.Empty(t, reasons)
}

func TestJudgeFunctionWarnsOnMissingName(t *testing.T) {
	p := profile.Default()
	fn := Function{Ranges: []AddrRange{{0x1000, 0x1010}}}
	ev := Evidence{NLineRows: 4, DominantFile: "main.c", DominantFileRatio: 1.0}
	verdict, reasons := JudgeFunction(fn, ev, p)
	assert.Equal(t, Warn, verdict)
	assert.Equal(t, []string{ReasonNameMissing}, reasons)
}

func TestJudgeFunctionWarnsOnSystemHeaderDominant(t *testing.T) {
	p := profile.Default()
	fn := Function{Name: name("f"), Ranges: []AddrRange{{0x1000, 0x1010}}}
	ev := Evidence{NLineRows: 4, DominantFile: "/usr/include/stdio.h", DominantFileRatio: 1.0}
	verdict, reasons := JudgeFunction(fn, ev, p)
	assert.Equal(t, Warn, verdict)
	assert.Contains(t, reasons, ReasonSystemHeaderDomin)
}

func TestJudgeFunctionNoLineRowsRejects(t *testing.T) {
	p := profile.Default()
	fn := Function{Name: name("f"), Ranges: []AddrRange{{0x1000, 0x1010}}}
	verdict, reasons := JudgeFunction(fn, Evidence{}, p)
	assert.Equal(t, Reject, verdict)
	assert.Equal(t, []string{ReasonNoLineRowsInRange}, reasons)
}

func TestIsJoinTarget(t *testing.T) {
	assert.True(t, Accept.IsJoinTarget())
	assert.True(t, Warn.IsJoinTarget())
	assert.False(t, Reject.IsJoinTarget())
}
