// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"path/filepath"

	"github.com/aclements/dwarfalign/internal/jsonio"
)

// WriteOutputs writes oracle_report.json and oracle_functions.json
// into dir.
func WriteOutputs(dir string, report Report, functions []FunctionRecord) error {
	if err := jsonio.WriteJSON(filepath.Join(dir, "oracle_report.json"), report); err != nil {
		return err
	}
	return jsonio.WriteJSON(filepath.Join(dir, "oracle_functions.json"), functions)
}
