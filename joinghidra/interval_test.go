// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyIndexAtFindsContainingInterval(t *testing.T) {
	idx := &BodyIndex{}
	idx.Add(0x1000, 0x1010, "f1")
	idx.Add(0x2000, 0x2004, "f2")

	id, ok := idx.At(0x1000)
	assert.True(t, ok)
	assert.Equal(t, "f1", id)

	_, ok = idx.At(0x1010)
	assert.False(t, ok)

	id, ok = idx.At(0x2003)
	assert.True(t, ok)
	assert.Equal(t, "f2", id)

	_, ok = idx.At(0x3000)
	assert.False(t, ok)
}

func TestBodyIndexEmptyIsSafe(t *testing.T) {
	var idx *BodyIndex
	_, ok := idx.At(0x1000)
	assert.False(t, ok)
}
