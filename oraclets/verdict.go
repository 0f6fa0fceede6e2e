// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import "github.com/aclements/dwarfalign/profile"

// TU gate reasons (spec.md §4.7).
const (
	ReasonTUParseError = "TU_PARSE_ERROR"
)

// Function judge reasons (spec.md §4.7).
const (
	ReasonInvalidSpan                 = "INVALID_SPAN"
	ReasonMissingFunctionName         = "MISSING_FUNCTION_NAME"
	ReasonDuplicateFunctionName       = "DUPLICATE_FUNCTION_NAME"
	ReasonDeepNesting                 = "DEEP_NESTING"
	ReasonAnonymousAggregatePresent   = "ANONYMOUS_AGGREGATE_PRESENT"
	ReasonNonstandardExtensionPattern = "NONSTANDARD_EXTENSION_PATTERN"
)

// Verdict is a gate or judge outcome.
type Verdict string

const (
	Accept Verdict = "ACCEPT"
	Warn   Verdict = "WARN"
	Reject Verdict = "REJECT"
)

// GateTU runs the TU-level gate (spec.md §4.7). A zero-children root
// with parse errors is REJECT; any other parse errors produce WARN
// but the TU remains usable.
func GateTU(tu *TranslationUnit) (Verdict, []string) {
	if len(tu.ParseErrs) == 0 {
		return Accept, nil
	}
	if tu.Root.ChildCount() == 0 {
		return Reject, []string{ReasonTUParseError}
	}
	return Warn, []string{ReasonTUParseError}
}

// JudgeFunction runs the per-function judge (spec.md §4.7).
// nameCounts is the count of each name across the whole TU, used to
// detect DUPLICATE_FUNCTION_NAME.
func JudgeFunction(tu *TranslationUnit, fn Function, nodes []StructuralNode, nameCounts map[string]int, p *profile.Profile) (Verdict, []string) {
	var reject []string
	if fn.Span.StartByte >= fn.Span.EndByte {
		reject = append(reject, ReasonInvalidSpan)
	}
	if fn.Name == nil {
		reject = append(reject, ReasonMissingFunctionName)
	}
	if len(reject) > 0 {
		return Reject, reject
	}

	var warn []string
	if nameCounts[*fn.Name] > 1 {
		warn = append(warn, ReasonDuplicateFunctionName)
	}
	if HasDeepNesting(nodes) {
		warn = append(warn, ReasonDeepNesting)
	}
	if HasAnonymousAggregate(fn) {
		warn = append(warn, ReasonAnonymousAggregatePresent)
	}
	if HasNonstandardExtension(tu, fn) {
		warn = append(warn, ReasonNonstandardExtensionPattern)
	}
	if len(warn) > 0 {
		return Warn, warn
	}
	return Accept, nil
}

// CountNames tabulates how many functions in fns share each name, for
// DUPLICATE_FUNCTION_NAME detection.
func CountNames(fns []Function) map[string]int {
	counts := make(map[string]int)
	for _, fn := range fns {
		if fn.Name != nil {
			counts[*fn.Name]++
		}
	}
	return counts
}
