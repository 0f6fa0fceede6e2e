// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	oracleDWARFBinary  string
	oracleDWARFProfile string
	oracleDWARFOut     string
	oracleDWARFPretty  bool
	oracleDWARFStdout  bool
)

var oracleDWARFCmd = &cobra.Command{
	Use:   "oracle-dwarf",
	Short: "Gate a binary and classify its DWARF functions as join targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(afero.NewOsFs(), oracleDWARFProfile)
		if err != nil {
			return err
		}

		res, err := oracledwarf.Run(oracleDWARFBinary, p, newLogger())
		if err != nil {
			return err
		}

		if oracleDWARFStdout {
			return printJSON(res.Report, oracleDWARFPretty)
		}
		if err := os.MkdirAll(oracleDWARFOut, 0o755); err != nil {
			return err
		}
		return oracledwarf.WriteOutputs(oracleDWARFOut, res.Report, res.Targets)
	},
}

func init() {
	f := oracleDWARFCmd.Flags()
	f.StringVar(&oracleDWARFBinary, "binary", "", "path to the compiled binary with DWARF debug info (required)")
	f.StringVar(&oracleDWARFProfile, "profile", "", "path to a profile file (optional; spec defaults apply)")
	f.StringVar(&oracleDWARFOut, "out", "oracle-dwarf-out", "output directory for oracle_report.json and oracle_functions.json")
	f.BoolVar(&oracleDWARFPretty, "pretty", true, "indent stdout output (ignored unless --stdout)")
	f.BoolVar(&oracleDWARFStdout, "stdout", false, "print the report to stdout instead of writing output files")
	oracleDWARFCmd.MarkFlagRequired("binary")
}
