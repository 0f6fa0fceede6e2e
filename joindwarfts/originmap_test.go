// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOriginMapTracksDirectiveState(t *testing.T) {
	src := strings.Join([]string{
		`# 1 "main.c"`,
		`int x;`,
		`int y;`,
	}, "\n")
	m, err := BuildOriginMap("t.i", strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, m.Rows, 3)
	assert.Nil(t, m.Rows[0])
	require.NotNil(t, m.Rows[1])
	assert.Equal(t, Origin{"main.c", 1}, *m.Rows[1])
	require.NotNil(t, m.Rows[2])
	assert.Equal(t, Origin{"main.c", 2}, *m.Rows[2])
}

func TestBuildOriginMapHandlesLineSpelling(t *testing.T) {
	src := "#line 5 \"foo.h\"\nint z;\n"
	m, err := BuildOriginMap("t.i", strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	require.NotNil(t, m.Rows[1])
	assert.Equal(t, Origin{"foo.h", 5}, *m.Rows[1])
}

func TestBuildOriginMapExcludesPseudoPaths(t *testing.T) {
	src := "# 1 \"<built-in>\"\nint a;\n# 1 \"main.c\" 2\nint b;\n"
	m, err := BuildOriginMap("t.i", strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, m.Rows, 4)
	assert.Nil(t, m.Rows[1])
	require.NotNil(t, m.Rows[3])
	assert.Equal(t, "main.c", m.Rows[3].Path)
}

func TestBuildOriginMapExcludesConfiguredPrefix(t *testing.T) {
	src := "# 1 \"/usr/include/stdio.h\"\nint a;\n"
	m, err := BuildOriginMap("t.i", strings.NewReader(src), []string{"/usr/include"})
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	assert.Nil(t, m.Rows[1])
}

func TestBuildOriginMapExcludesSystemHeaderFlag(t *testing.T) {
	src := "# 1 \"weird.h\" 1 3\nint a;\n"
	m, err := BuildOriginMap("t.i", strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	assert.Nil(t, m.Rows[1])
}

func TestBuildOriginMapUnescapesQuotesAndBackslashes(t *testing.T) {
	src := `# 1 "a\"b\\c.h"` + "\nint a;\n"
	m, err := BuildOriginMap("t.i", strings.NewReader(src), nil)
	require.NoError(t, err)
	require.NotNil(t, m.Rows[1])
	assert.Equal(t, `a"b\c.h`, m.Rows[1].Path)
}
