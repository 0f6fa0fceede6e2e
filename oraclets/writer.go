// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import (
	"path/filepath"

	"github.com/aclements/dwarfalign/internal/jsonio"
)

// WriteOutputs writes oracle_ts_report.json, oracle_ts_functions.json,
// and extraction_recipes.json into dir.
func WriteOutputs(dir string, report Report, functions []FunctionRecord, recipes []Recipe) error {
	if err := jsonio.WriteJSON(filepath.Join(dir, "oracle_ts_report.json"), report); err != nil {
		return err
	}
	if err := jsonio.WriteJSON(filepath.Join(dir, "oracle_ts_functions.json"), functions); err != nil {
		return err
	}
	return jsonio.WriteJSON(filepath.Join(dir, "extraction_recipes.json"), recipes)
}
