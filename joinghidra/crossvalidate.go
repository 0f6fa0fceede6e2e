// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"fmt"

	"github.com/aclements/dwarfalign"
	"github.com/aclements/dwarfalign/receipt"
)

// CrossValidateInputs names every SHA-256 this run observed, for
// same-variant or cross-variant coherence checking (spec.md §4.11).
type CrossValidateInputs struct {
	OracleArtifactSHA string // binary_sha256 in the DWARF report
	AlignmentSHA      string // binary_sha256 in the alignment output
	GhidraSHA         string // binary_sha256 in the Ghidra report

	// CrossVariant, when set, makes the Ghidra side match a second,
	// explicitly named receipt build (e.g. the stripped binary)
	// instead of the oracle artifact.
	CrossVariant bool
}

// CrossValidate implements spec.md §4.11. In same-variant mode,
// oracle, alignment, and Ghidra SHAs must all equal the receipt's
// oracle-artifact SHA. In cross-variant mode, the oracle and alignment
// SHAs must match the oracle artifact's SHA, and the Ghidra SHA must
// match a second artifact SHA that also appears in the receipt. Any
// mismatch returns a *dwarfalign.StructuralError listing every
// mismatched pair.
func CrossValidate(r *receipt.Receipt, oracleOptimization, oracleVariant string, in CrossValidateInputs, ghidraVariantOptimization, ghidraVariant string) error {
	oracleBuild, ok := r.FindByVariant(oracleOptimization, oracleVariant)
	if !ok || oracleBuild.Artifact == nil {
		return &dwarfalign.StructuralError{
			Op:       "join-ghidra: cross-validate",
			Entities: []string{fmt.Sprintf("no receipt build for %s/%s", oracleOptimization, oracleVariant)},
		}
	}
	oracleSHA := oracleBuild.Artifact.SHA256

	var mismatches []string
	if in.OracleArtifactSHA != oracleSHA {
		mismatches = append(mismatches, fmt.Sprintf("oracle_sha=%s != receipt_sha=%s", in.OracleArtifactSHA, oracleSHA))
	}
	if in.AlignmentSHA != oracleSHA {
		mismatches = append(mismatches, fmt.Sprintf("alignment_sha=%s != receipt_sha=%s", in.AlignmentSHA, oracleSHA))
	}

	wantGhidraSHA := oracleSHA
	if in.CrossVariant {
		ghidraBuild, ok := r.FindByVariant(ghidraVariantOptimization, ghidraVariant)
		if !ok || ghidraBuild.Artifact == nil {
			return &dwarfalign.StructuralError{
				Op:       "join-ghidra: cross-validate",
				Entities: []string{fmt.Sprintf("no receipt build for cross-variant %s/%s", ghidraVariantOptimization, ghidraVariant)},
			}
		}
		wantGhidraSHA = ghidraBuild.Artifact.SHA256
	}
	if in.GhidraSHA != wantGhidraSHA {
		mismatches = append(mismatches, fmt.Sprintf("ghidra_sha=%s != expected_sha=%s", in.GhidraSHA, wantGhidraSHA))
	}

	if len(mismatches) > 0 {
		return &dwarfalign.StructuralError{Op: "join-ghidra: cross-validate", Entities: mismatches}
	}
	return nil
}
