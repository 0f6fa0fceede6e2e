// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"errors"
	"testing"

	"github.com/aclements/dwarfalign"
	"github.com/aclements/dwarfalign/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() *receipt.Receipt {
	return &receipt.Receipt{
		Builds: []receipt.Build{
			{Optimization: "O2", Variant: "debug", Status: "ok", Artifact: &receipt.Artifact{SHA256: "aaa", Path: "a.out"}},
			{Optimization: "O2", Variant: "stripped", Status: "ok", Artifact: &receipt.Artifact{SHA256: "bbb", Path: "a.stripped"}},
		},
	}
}

func TestCrossValidateSameVariantPasses(t *testing.T) {
	r := sampleReceipt()
	in := CrossValidateInputs{OracleArtifactSHA: "aaa", AlignmentSHA: "aaa", GhidraSHA: "aaa"}
	err := CrossValidate(r, "O2", "debug", in, "", "")
	assert.NoError(t, err)
}

func TestCrossValidateSameVariantMismatchErrors(t *testing.T) {
	r := sampleReceipt()
	in := CrossValidateInputs{OracleArtifactSHA: "aaa", AlignmentSHA: "aaa", GhidraSHA: "ccc"}
	err := CrossValidate(r, "O2", "debug", in, "", "")
	require.Error(t, err)
	var structuralErr *dwarfalign.StructuralError
	assert.True(t, errors.As(err, &structuralErr))
}

func TestCrossValidateCrossVariantPasses(t *testing.T) {
	r := sampleReceipt()
	in := CrossValidateInputs{OracleArtifactSHA: "aaa", AlignmentSHA: "aaa", GhidraSHA: "bbb", CrossVariant: true}
	err := CrossValidate(r, "O2", "debug", in, "O2", "stripped")
	assert.NoError(t, err)
}

func TestCrossValidateMissingReceiptBuildErrors(t *testing.T) {
	r := sampleReceipt()
	in := CrossValidateInputs{}
	err := CrossValidate(r, "O3", "debug", in, "", "")
	assert.Error(t, err)
}
