// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// commentRe matches block comments and line comments. It is unaware
// of string literals, so a comment-like substring inside a string
// literal (e.g. "http://") is also stripped. This is a deliberate v0
// limitation (spec.md §4.5, §9 open question (c)).
var commentRe = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalize strips comments and collapses whitespace runs to a single
// space, trimming the result. This is the transformation whose SHA-256
// produces a function's context_hash (spec.md §3, §4.5).
func normalize(text string) string {
	stripped := commentRe.ReplaceAllString(text, "")
	collapsed := whitespaceRe.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(collapsed)
}

// contextHash returns the SHA-256 hex of the normalized function
// text, decoded from raw bytes with UTF-8 replacement first.
func contextHash(raw []byte) string {
	decoded := decodeUTF8Replace(raw)
	sum := sha256.Sum256([]byte(normalize(decoded)))
	return hex.EncodeToString(sum[:])
}

// rawHash returns the SHA-256 hex of the raw (non-normalized) function
// text (node_hash_raw, spec.md §3).
func rawHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
