// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	p, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	const yaml = `
name: strict
overlap_threshold: 0.9
min_overlap_lines: 3
excluded_path_prefixes:
  - /opt/sysroot
`
	require.NoError(t, afero.WriteFile(fs, "/profile.yaml", []byte(yaml), 0644))

	p, err := Load(fs, "/profile.yaml")
	require.NoError(t, err)

	assert.Equal(t, "strict", p.Name)
	assert.Equal(t, 0.9, p.OverlapThreshold)
	assert.Equal(t, 3, p.MinOverlapLines)
	assert.Equal(t, []string{"/opt/sysroot"}, p.ExcludedPathPrefixes)
	// Unset knobs still inherit defaults.
	assert.Equal(t, Default().Epsilon, p.Epsilon)
}

func TestIDStableAcrossCopies(t *testing.T) {
	a := Default()
	b := &Profile{}
	*b = *a

	assert.Equal(t, a.ID(), b.ID())
}

func TestIDChangesWithKnob(t *testing.T) {
	a := Default()
	b := Default()
	b.OverlapThreshold = 0.5

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestIDIsStableHexPrefix(t *testing.T) {
	id := Default().ID()
	require.Len(t, id, 32)
}
