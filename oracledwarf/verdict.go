// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"strings"

	"github.com/aclements/dwarfalign/profile"
)

// Binary gate reasons (spec.md §4.4). Any nonempty reason list means
// REJECT.
const (
	ReasonNoDebugInfo    = "NO_DEBUG_INFO"
	ReasonNoDebugLine    = "NO_DEBUG_LINE"
	ReasonUnsupportedArc = "UNSUPPORTED_ARCH"
	ReasonSplitDWARF     = "SPLIT_DWARF"
	ReasonDWARFParse     = "DWARF_PARSE_ERROR"
)

// Function judge reasons (spec.md §4.4).
const (
	ReasonDeclarationOnly   = "DECLARATION_ONLY"
	ReasonMissingRange      = "MISSING_RANGE"
	ReasonNoLineRowsInRange = "NO_LINE_ROWS_IN_RANGE"
	ReasonNameMissing       = "NAME_MISSING"
	ReasonMultiFileRange    = "MULTI_FILE_RANGE"
	ReasonSystemHeaderDomin = "SYSTEM_HEADER_DOMINANT"
	ReasonRangesFragmented  = "RANGES_FRAGMENTED"
)

// Verdict is a gate or judge outcome.
type Verdict string

const (
	Accept Verdict = "ACCEPT"
	Warn   Verdict = "WARN"
	Reject Verdict = "REJECT"
)

// GateBinary runs the binary-level gate (spec.md §4.4). A nonempty
// reason list always means REJECT; downstream stages then short-circuit
// with empty function lists (spec.md §7 tier 2).
func GateBinary(b *Binary, parseErr error) []string {
	var reasons []string
	if parseErr != nil {
		reasons = append(reasons, ReasonDWARFParse)
		return reasons
	}
	if !b.Is64Bit() {
		reasons = append(reasons, ReasonUnsupportedArc)
	}
	if b.SplitDWARF {
		reasons = append(reasons, ReasonSplitDWARF)
	}
	if !b.Sections[".debug_info"] {
		reasons = append(reasons, ReasonNoDebugInfo)
	}
	if !b.Sections[".debug_line"] {
		reasons = append(reasons, ReasonNoDebugLine)
	}
	return reasons
}

// JudgeFunction runs the per-function judge (spec.md §4.4). Priority
// order: REJECT reasons first; if none, WARN reasons; otherwise
// ACCEPT. A function is a join target (spec.md glossary) if the
// verdict is ACCEPT or WARN.
func JudgeFunction(fn Function, ev Evidence, p *profile.Profile) (Verdict, []string) {
	var reject []string

	if fn.IsDeclaration {
		reject = append(reject, ReasonDeclarationOnly)
	}
	if len(fn.Ranges) == 0 {
		reject = append(reject, ReasonMissingRange)
	}
	if len(fn.Ranges) > 0 && ev.NLineRows == 0 {
		reject = append(reject, ReasonNoLineRowsInRange)
	}
	if len(reject) > 0 {
		return Reject, reject
	}

	var warn []string
	if fn.Name == nil {
		warn = append(warn, ReasonNameMissing)
	}
	if ev.DominantFileRatio < p.MultiFileWarnRatio {
		warn = append(warn, ReasonMultiFileRange)
	}
	if hasPrefix(ev.DominantFile, p.SystemHeaderPrefixes) {
		warn = append(warn, ReasonSystemHeaderDomin)
	}
	if len(fn.Ranges) > p.MaxFragmentsWarn {
		warn = append(warn, ReasonRangesFragmented)
	}
	if len(warn) > 0 {
		return Warn, warn
	}
	return Accept, nil
}

// IsJoinTarget reports whether a verdict makes its function eligible
// for the DWARF-TS and Ghidra joins.
func (v Verdict) IsJoinTarget() bool {
	return v == Accept || v == Warn
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
