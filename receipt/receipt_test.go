// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *Receipt {
	return &Receipt{
		Builds: []Build{
			{Optimization: "O2", Variant: "debug", Status: "ok", Artifact: &Artifact{SHA256: "aaa", Path: "a.out"}},
			{Optimization: "O0", Variant: "debug", Status: "failed"},
		},
	}
}

func TestFindBySHA256(t *testing.T) {
	r := sample()

	b, ok := r.FindBySHA256("aaa")
	assert.True(t, ok)
	assert.Equal(t, "O2", b.Optimization)

	_, ok = r.FindBySHA256("missing")
	assert.False(t, ok)
}

func TestFindByVariantSkipsFailedBuildsWithNoArtifact(t *testing.T) {
	r := sample()

	_, ok := r.FindByVariant("O0", "debug")
	assert.False(t, ok)

	b, ok := r.FindByVariant("O2", "debug")
	assert.True(t, ok)
	assert.Equal(t, "aaa", b.Artifact.SHA256)
}
