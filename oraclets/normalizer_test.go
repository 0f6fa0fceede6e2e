// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsCommentsAndCollapsesWhitespace(t *testing.T) {
	in := "int   add(int a, int b) {\n  // returns sum\n  return a /* inline */ + b;\n}"
	got := normalize(in)
	assert.Equal(t, "int add(int a, int b) { return a + b; }", got)
}

func TestNormalizeStripsBlockCommentSpanningLines(t *testing.T) {
	in := "int f() {\n/*\n * banner\n */\nreturn 1;\n}"
	got := normalize(in)
	assert.Equal(t, "int f() { return 1; }", got)
}

func TestContextHashIgnoresWhitespaceReformatting(t *testing.T) {
	a := contextHash([]byte("int f(int x) { return x; }"))
	b := contextHash([]byte("int f(int x) {\n    return x;\n}\n"))
	assert.Equal(t, a, b)
}

func TestRawHashDiffersOnWhitespace(t *testing.T) {
	a := rawHash([]byte("int f(){return 1;}"))
	b := rawHash([]byte("int f() { return 1; }"))
	assert.NotEqual(t, a, b)
}

func TestDecodeUTF8ReplaceSubstitutesInvalidBytes(t *testing.T) {
	got := decodeUTF8Replace([]byte{'a', 0xff, 'b'})
	assert.Equal(t, "a�b", got)
}
