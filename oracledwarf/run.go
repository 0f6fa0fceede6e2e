// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"sort"
	"time"

	"github.com/aclements/dwarfalign/profile"
	"github.com/rs/zerolog"
)

// Result is the in-memory output of a single Oracle-DWARF run.
type Result struct {
	Report    Report
	Targets   []FunctionRecord // ACCEPT or WARN
	NonTarget []FunctionRecord // REJECT
}

// Run is a pure function from a binary path and profile to in-memory
// output objects (spec.md §4.14). The optional log receives a gate
// event when the binary is rejected, a debug event per WARN/REJECT
// function, and a run summary; it never affects the returned Result.
func Run(path string, p *profile.Profile, log zerolog.Logger) (*Result, error) {
	b, openErr := OpenBinary(path)
	if b == nil {
		return nil, openErr
	}
	defer b.Close()

	reasons := GateBinary(b, b.DWARFError())
	report := Report{
		ProfileID:   p.ID(),
		SchemaVer:   SchemaVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		BinaryPath:  path,
		BinarySHA:   b.SHA256,
		BuildID:     b.BuildID,
		Reasons:     reasons,
	}

	if len(reasons) > 0 {
		report.Verdict = string(Reject)
		log.Warn().Str("binary", path).Strs("reasons", reasons).Msg("oracle-dwarf: binary gate REJECT")
		return &Result{Report: report}, nil
	}
	report.Verdict = string(Accept)

	functions, err := b.IndexFunctions()
	if err != nil {
		return nil, err
	}
	evidence, err := b.ComputeEvidence(functions)
	if err != nil {
		return nil, err
	}

	res := &Result{Report: report}
	for _, fn := range functions {
		ev := evidence[fn.ID]
		verdict, fnReasons := JudgeFunction(fn, ev, p)
		rec := BuildFunctionRecord(fn, ev, verdict, fnReasons)

		switch verdict {
		case Accept:
			res.Report.Counts.Accept++
			res.Targets = append(res.Targets, rec)
		case Warn:
			res.Report.Counts.Warn++
			res.Targets = append(res.Targets, rec)
			log.Debug().Str("function", fn.ID).Strs("reasons", fnReasons).Msg("oracle-dwarf: function WARN")
		case Reject:
			res.Report.Counts.Reject++
			res.NonTarget = append(res.NonTarget, rec)
			log.Debug().Str("function", fn.ID).Strs("reasons", fnReasons).Msg("oracle-dwarf: function REJECT")
		}
	}

	sort.Slice(res.Targets, func(i, j int) bool { return res.Targets[i].ID < res.Targets[j].ID })
	sort.Slice(res.NonTarget, func(i, j int) bool { return res.NonTarget[i].ID < res.NonTarget[j].ID })

	log.Info().Str("binary", path).Int("accept", res.Report.Counts.Accept).
		Int("warn", res.Report.Counts.Warn).Int("reject", res.Report.Counts.Reject).
		Msg("oracle-dwarf: run complete")

	return res, nil
}
