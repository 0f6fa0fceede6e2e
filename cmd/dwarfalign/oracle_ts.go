// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/aclements/dwarfalign/oraclets"
	"github.com/aclements/dwarfalign/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	oracleTSSources []string
	oracleTSProfile string
	oracleTSOut     string
	oracleTSPretty  bool
	oracleTSStdout  bool
)

var oracleTSCmd = &cobra.Command{
	Use:   "oracle-ts",
	Short: "Gate and classify the functions of one or more preprocessed translation units",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(oracleTSSources) == 0 {
			return fmt.Errorf("oracle-ts: at least one --src is required")
		}

		p, err := profile.Load(afero.NewOsFs(), oracleTSProfile)
		if err != nil {
			return err
		}

		parser := oraclets.NewParser()
		defer parser.Close()

		log := newLogger()
		var summaries []oraclets.TUSummary
		var functions []oraclets.FunctionRecord
		var recipes []oraclets.Recipe

		for _, src := range oracleTSSources {
			source, err := os.ReadFile(src)
			if err != nil {
				return fmt.Errorf("oracle-ts: reading %s: %w", src, err)
			}
			res, err := oraclets.Run(parser, src, source, p, log)
			if err != nil {
				return fmt.Errorf("oracle-ts: %s: %w", src, err)
			}
			summaries = append(summaries, res.Summary)
			functions = append(functions, res.Functions...)
			recipes = append(recipes, res.Recipes...)
		}

		report := oraclets.BuildReport(p, summaries)

		if oracleTSStdout {
			return printJSON(struct {
				Report    oraclets.Report          `json:"report"`
				Functions []oraclets.FunctionRecord `json:"functions"`
				Recipes   []oraclets.Recipe         `json:"recipes"`
			}{report, functions, recipes}, oracleTSPretty)
		}
		if err := os.MkdirAll(oracleTSOut, 0o755); err != nil {
			return err
		}
		return oraclets.WriteOutputs(oracleTSOut, report, functions, recipes)
	},
}

func init() {
	f := oracleTSCmd.Flags()
	f.StringSliceVar(&oracleTSSources, "src", nil, "preprocessed (.i) source file; repeatable")
	f.StringVar(&oracleTSProfile, "profile", "", "path to a profile file (optional; spec defaults apply)")
	f.StringVar(&oracleTSOut, "out", "oracle-ts-out", "output directory for oracle_ts_report.json, oracle_ts_functions.json, and extraction_recipes.json")
	f.BoolVar(&oracleTSPretty, "pretty", true, "indent stdout output (ignored unless --stdout)")
	f.BoolVar(&oracleTSStdout, "stdout", false, "print the report, functions, and recipes to stdout instead of writing output files")
}
