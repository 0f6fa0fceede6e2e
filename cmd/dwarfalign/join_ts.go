// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/aclements/dwarfalign/internal/jsonio"
	"github.com/aclements/dwarfalign/joindwarfts"
	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/oraclets"
	"github.com/aclements/dwarfalign/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	joinTSDwarfReport    string
	joinTSDwarfFunctions string
	joinTSReport         string
	joinTSFunctions      string
	joinTSProfile        string
	joinTSOut            string
	joinTSPretty         bool
	joinTSStdout         bool
)

var joinTSCmd = &cobra.Command{
	Use:   "join-ts",
	Short: "Score DWARF functions against tree-sitter functions by line evidence",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(afero.NewOsFs(), joinTSProfile)
		if err != nil {
			return err
		}

		var dwarfReport oracledwarf.Report
		if err := jsonio.ReadJSON(joinTSDwarfReport, &dwarfReport); err != nil {
			return fmt.Errorf("join-ts: reading %s: %w", joinTSDwarfReport, err)
		}
		var dwarfFunctions []oracledwarf.FunctionRecord
		if err := jsonio.ReadJSON(joinTSDwarfFunctions, &dwarfFunctions); err != nil {
			return fmt.Errorf("join-ts: reading %s: %w", joinTSDwarfFunctions, err)
		}
		var tsReport oraclets.Report
		if err := jsonio.ReadJSON(joinTSReport, &tsReport); err != nil {
			return fmt.Errorf("join-ts: reading %s: %w", joinTSReport, err)
		}
		var tsFunctions []oraclets.FunctionRecord
		if err := jsonio.ReadJSON(joinTSFunctions, &tsFunctions); err != nil {
			return fmt.Errorf("join-ts: reading %s: %w", joinTSFunctions, err)
		}

		byTU := make(map[string][]oraclets.FunctionRecord)
		for _, fn := range tsFunctions {
			byTU[fn.TUPath] = append(byTU[fn.TUPath], fn)
		}

		tus := make([]joindwarfts.TU, 0, len(tsReport.TUs))
		for _, summary := range tsReport.TUs {
			source, err := os.ReadFile(summary.TUPath)
			if err != nil {
				return fmt.Errorf("join-ts: reading %s: %w", summary.TUPath, err)
			}
			tus = append(tus, joindwarfts.TU{
				Path:      summary.TUPath,
				Source:    source,
				SHA256:    summary.TUSHA,
				Functions: byTU[summary.TUPath],
			})
		}

		res, err := joindwarfts.Run(dwarfReport, dwarfFunctions, tsReport.SchemaVer, tus, p, newLogger())
		if err != nil {
			return err
		}

		if joinTSStdout {
			return printJSON(struct {
				Report joindwarfts.AlignmentReport       `json:"report"`
				Pairs  []joindwarfts.AlignmentPairRecord `json:"pairs"`
			}{res.Report, res.Pairs}, joinTSPretty)
		}
		if err := os.MkdirAll(joinTSOut, 0o755); err != nil {
			return err
		}
		return joindwarfts.WriteOutputs(joinTSOut, res.Pairs, res.Report)
	},
}

func init() {
	f := joinTSCmd.Flags()
	f.StringVar(&joinTSDwarfReport, "dwarf-report", "", "path to oracle_report.json (required)")
	f.StringVar(&joinTSDwarfFunctions, "dwarf-functions", "", "path to oracle_functions.json (required)")
	f.StringVar(&joinTSReport, "ts-report", "", "path to oracle_ts_report.json (required)")
	f.StringVar(&joinTSFunctions, "ts-functions", "", "path to oracle_ts_functions.json (required)")
	f.StringVar(&joinTSProfile, "profile", "", "path to a profile file (optional; spec defaults apply)")
	f.StringVar(&joinTSOut, "out", "join-ts-out", "output directory for alignment_pairs.json and alignment_report.json")
	f.BoolVar(&joinTSPretty, "pretty", true, "indent stdout output (ignored unless --stdout)")
	f.BoolVar(&joinTSStdout, "stdout", false, "print the pairs and report to stdout instead of writing output files")
	joinTSCmd.MarkFlagRequired("dwarf-report")
	joinTSCmd.MarkFlagRequired("dwarf-functions")
	joinTSCmd.MarkFlagRequired("ts-report")
	joinTSCmd.MarkFlagRequired("ts-functions")
}
