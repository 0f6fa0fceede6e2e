// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oraclets

import (
	"sort"
	"time"

	"github.com/aclements/dwarfalign/profile"
	"github.com/rs/zerolog"
)

// Result is the in-memory output of a single Oracle-TS run over one
// translation unit.
type Result struct {
	TU        *TranslationUnit
	Summary   TUSummary
	Functions []FunctionRecord
	Recipes   []Recipe // one per ACCEPT or WARN function
}

// Run parses source as a single translation unit, extracts and judges
// its functions, and returns the in-memory result (spec.md §4.14). The
// optional log receives gate/judge events; it never affects the
// returned Result. p is a shared, already-constructed parser so that
// one process can run many TUs without re-initializing tree-sitter.
func Run(p *Parser, path string, source []byte, profile_ *profile.Profile, log zerolog.Logger) (*Result, error) {
	tu, err := p.Parse(path, source)
	if err != nil {
		return nil, err
	}

	tuVerdict, tuReasons := GateTU(tu)
	summary := TUSummary{
		TUPath:  path,
		TUSHA:   tu.SHA256,
		Verdict: string(tuVerdict),
		Reasons: tuReasons,
	}

	res := &Result{TU: tu, Summary: summary}
	if tuVerdict == Reject {
		log.Warn().Str("tu", path).Strs("reasons", tuReasons).Msg("oracle-ts: TU gate REJECT")
		return res, nil
	}
	if len(tuReasons) > 0 {
		log.Debug().Str("tu", path).Strs("reasons", tuReasons).Msg("oracle-ts: TU gate WARN")
	}

	functions := ExtractFunctions(tu)
	nameCounts := CountNames(functions)

	for _, fn := range functions {
		nodes := IndexNodes(tu, fn, profile_.DeepNestingThreshold)
		verdict, reasons := JudgeFunction(tu, fn, nodes, nameCounts, profile_)
		rec, recipe := BuildFunctionRecord(path, fn, nodes, verdict, reasons)

		switch verdict {
		case Accept:
			res.Summary.Counts.Accept++
			res.Functions = append(res.Functions, rec)
			res.Recipes = append(res.Recipes, recipe)
		case Warn:
			res.Summary.Counts.Warn++
			res.Functions = append(res.Functions, rec)
			res.Recipes = append(res.Recipes, recipe)
			log.Debug().Str("function", fn.ID).Strs("reasons", reasons).Msg("oracle-ts: function WARN")
		case Reject:
			res.Summary.Counts.Reject++
			res.Functions = append(res.Functions, rec)
			log.Debug().Str("function", fn.ID).Strs("reasons", reasons).Msg("oracle-ts: function REJECT")
		}
	}

	sort.Slice(res.Functions, func(i, j int) bool { return res.Functions[i].ID < res.Functions[j].ID })
	sort.Slice(res.Recipes, func(i, j int) bool { return res.Recipes[i].FunctionID < res.Recipes[j].FunctionID })

	log.Info().Str("tu", path).Int("accept", res.Summary.Counts.Accept).
		Int("warn", res.Summary.Counts.Warn).Int("reject", res.Summary.Counts.Reject).
		Msg("oracle-ts: run complete")

	return res, nil
}

// BuildReport assembles the top-level Report from a profile and the
// per-TU summaries collected across a batch run.
func BuildReport(p *profile.Profile, summaries []TUSummary) Report {
	return Report{
		ProfileID:   p.ID(),
		SchemaVer:   SchemaVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		TUs:         summaries,
	}
}
