// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joinghidra

import (
	"time"

	"github.com/aclements/dwarfalign/ghidrarecord"
	"github.com/aclements/dwarfalign/joindwarfts"
	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/profile"
	"github.com/rs/zerolog"
)

// Result is the in-memory output of a single join-ghidra run.
type Result struct {
	Report    Report
	Functions []JoinedFunctionRecord
	Variables []JoinedVariableRecord
}

// Run implements spec.md §4.14's runner contract for the address join:
// a pure function from DWARF functions, their alignment pairs, and a
// Ghidra report/record set to the final joined dataset.
func Run(
	binaryPath string,
	dwarfFunctions []oracledwarf.FunctionRecord,
	alignmentPairs []joindwarfts.AlignmentPairRecord,
	ghidraReport ghidrarecord.Report,
	ghidraFunctions []ghidrarecord.Function,
	ghidraVariables []ghidrarecord.Variable,
	ghidraCFGs []ghidrarecord.CFG,
	p *profile.Profile,
	log zerolog.Logger,
) (*Result, error) {
	table := BuildGhidraTable(ghidraReport, ghidraFunctions, ghidraCFGs)
	auxNames := AuxNameSet(p.AuxFunctionNames)

	pairByID := make(map[string]joindwarfts.AlignmentPairRecord, len(alignmentPairs))
	for _, pair := range alignmentPairs {
		pairByID[pair.DWARFFunctionID] = pair
	}

	res := &Result{
		Report: Report{
			ProfileID:   p.ID(),
			SchemaVer:   SchemaVersion,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			BinaryPath:  binaryPath,
		},
	}

	ghidraFnByID := make(map[string]string, len(dwarfFunctions))

	for _, dwarfRec := range dwarfFunctions {
		if dwarfRec.Verdict == "REJECT" {
			res.Report.Counts.NonTarget++
			continue
		}

		pair := pairByID[dwarfRec.ID]
		fn := oracledwarf.Function{ID: dwarfRec.ID, Name: dwarfRec.Name}
		for _, r := range dwarfRec.Ranges {
			fn.Ranges = append(fn.Ranges, oracledwarf.AddrRange{Low: r.Low, High: r.High})
		}

		resolved := Resolve(fn, table, auxNames)
		row := BuildJoinedFunctionRecord(dwarfRec, pair, resolved)
		res.Functions = append(res.Functions, row)

		if resolved.GhidraFunction != nil {
			ghidraFnByID[dwarfRec.ID] = resolved.GhidraFunction.FunctionID
		}

		switch pair.Verdict {
		case string(joindwarfts.Match):
			res.Report.Counts.Match++
		case string(joindwarfts.Ambiguous):
			res.Report.Counts.Ambiguous++
		case string(joindwarfts.NoMatch):
			res.Report.Counts.NoMatch++
		}
		if row.HighConfidence {
			res.Report.HighConfN++
		}
		if len(resolved.Reasons) > 0 {
			log.Debug().Str("function", dwarfRec.ID).Strs("reasons", resolved.Reasons).Msg("join-ghidra: address join unresolved")
		}
	}

	for dwarfID, ghidraFnID := range ghidraFnByID {
		for _, v := range ghidraVariables {
			if v.FunctionID == ghidraFnID {
				res.Variables = append(res.Variables, BuildJoinedVariableRecord(dwarfID, v))
			}
		}
	}

	SortJoinedFunctions(res.Functions)
	SortJoinedVariables(res.Variables)
	res.Report.ReasonCounts = AccumulateReasonCounts(res.Functions)

	log.Info().Str("binary", binaryPath).Int("match", res.Report.Counts.Match).
		Int("ambiguous", res.Report.Counts.Ambiguous).Int("no_match", res.Report.Counts.NoMatch).
		Int("high_confidence", res.Report.HighConfN).Msg("join-ghidra: run complete")

	return res, nil
}
