// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dwarfalign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuralErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("malformed line table")
	err := &StructuralError{Op: "oracle-dwarf: gate", Entities: []string{"main.c"}, Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "malformed line table")
	assert.Contains(t, err.Error(), "main.c")
}

func TestStructuralErrorWithoutCauseStillFormats(t *testing.T) {
	err := &StructuralError{Op: "join-ghidra: cross-validate", Entities: []string{"a", "b"}}
	assert.Nil(t, err.Unwrap())
	assert.Contains(t, err.Error(), "join-ghidra: cross-validate")
}
