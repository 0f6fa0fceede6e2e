// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import (
	"path/filepath"

	"github.com/aclements/dwarfalign/internal/jsonio"
)

// WriteOutputs writes alignment_pairs.json and alignment_report.json
// into dir.
func WriteOutputs(dir string, pairs []AlignmentPairRecord, report AlignmentReport) error {
	if err := jsonio.WriteJSON(filepath.Join(dir, "alignment_pairs.json"), pairs); err != nil {
		return err
	}
	return jsonio.WriteJSON(filepath.Join(dir, "alignment_report.json"), report)
}
