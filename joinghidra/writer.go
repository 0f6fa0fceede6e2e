// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"path/filepath"

	"github.com/aclements/dwarfalign/internal/jsonio"
)

// WriteOutputs writes join_report.json, joined_functions.jsonl, and
// joined_variables.jsonl into dir.
func WriteOutputs(dir string, report Report, functions []JoinedFunctionRecord, variables []JoinedVariableRecord) error {
	if err := jsonio.WriteJSON(filepath.Join(dir, "join_report.json"), report); err != nil {
		return err
	}
	if err := jsonio.WriteJSONL(filepath.Join(dir, "joined_functions.jsonl"), toAnySlice(functions)); err != nil {
		return err
	}
	return jsonio.WriteJSONL(filepath.Join(dir, "joined_variables.jsonl"), toAnySlice(variables))
}

func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
