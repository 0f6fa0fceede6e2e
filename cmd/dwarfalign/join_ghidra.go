// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/aclements/dwarfalign/ghidrarecord"
	"github.com/aclements/dwarfalign/internal/jsonio"
	"github.com/aclements/dwarfalign/joindwarfts"
	"github.com/aclements/dwarfalign/joinghidra"
	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/profile"
	"github.com/aclements/dwarfalign/receipt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	joinGhidraBinary          string
	joinGhidraDwarfReport     string
	joinGhidraDwarfFunctions  string
	joinGhidraAlignmentPairs  string
	joinGhidraGhidraReport    string
	joinGhidraGhidraFunctions string
	joinGhidraGhidraVariables string
	joinGhidraGhidraCFGs      string
	joinGhidraProfile         string
	joinGhidraOut             string
	joinGhidraPretty          bool
	joinGhidraStdout          bool

	joinGhidraReceipt            string
	joinGhidraOracleOptimization string
	joinGhidraOracleVariant      string
	joinGhidraCrossVariant       bool
	joinGhidraVariantOptim       string
	joinGhidraVariantName        string
)

var joinGhidraCmd = &cobra.Command{
	Use:   "join-ghidra",
	Short: "Resolve DWARF functions against a Ghidra extraction by address",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(afero.NewOsFs(), joinGhidraProfile)
		if err != nil {
			return err
		}

		var dwarfReport oracledwarf.Report
		if joinGhidraReceipt != "" {
			if err := jsonio.ReadJSON(joinGhidraDwarfReport, &dwarfReport); err != nil {
				return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraDwarfReport, err)
			}
		}
		var dwarfFunctions []oracledwarf.FunctionRecord
		if err := jsonio.ReadJSON(joinGhidraDwarfFunctions, &dwarfFunctions); err != nil {
			return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraDwarfFunctions, err)
		}
		var alignmentPairs []joindwarfts.AlignmentPairRecord
		if err := jsonio.ReadJSON(joinGhidraAlignmentPairs, &alignmentPairs); err != nil {
			return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraAlignmentPairs, err)
		}
		var ghidraReport ghidrarecord.Report
		if err := jsonio.ReadJSON(joinGhidraGhidraReport, &ghidraReport); err != nil {
			return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraGhidraReport, err)
		}
		ghidraFunctions, err := jsonio.ReadJSONL[ghidrarecord.Function](joinGhidraGhidraFunctions, newLogger())
		if err != nil {
			return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraGhidraFunctions, err)
		}
		ghidraVariables, err := jsonio.ReadJSONL[ghidrarecord.Variable](joinGhidraGhidraVariables, newLogger())
		if err != nil {
			return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraGhidraVariables, err)
		}
		ghidraCFGs, err := jsonio.ReadJSONL[ghidrarecord.CFG](joinGhidraGhidraCFGs, newLogger())
		if err != nil {
			return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraGhidraCFGs, err)
		}

		if joinGhidraReceipt != "" {
			var r receipt.Receipt
			if err := jsonio.ReadJSON(joinGhidraReceipt, &r); err != nil {
				return fmt.Errorf("join-ghidra: reading %s: %w", joinGhidraReceipt, err)
			}
			in := joinghidra.CrossValidateInputs{
				OracleArtifactSHA: dwarfReport.BinarySHA,
				AlignmentSHA:      dwarfReport.BinarySHA,
				GhidraSHA:         ghidraReport.BinarySHA256,
				CrossVariant:      joinGhidraCrossVariant,
			}
			if err := joinghidra.CrossValidate(&r, joinGhidraOracleOptimization, joinGhidraOracleVariant, in, joinGhidraVariantOptim, joinGhidraVariantName); err != nil {
				return err
			}
		}

		res, err := joinghidra.Run(joinGhidraBinary, dwarfFunctions, alignmentPairs, ghidraReport, ghidraFunctions, ghidraVariables, ghidraCFGs, p, newLogger())
		if err != nil {
			return err
		}

		if joinGhidraStdout {
			return printJSON(struct {
				Report    joinghidra.Report                `json:"report"`
				Functions []joinghidra.JoinedFunctionRecord `json:"functions"`
				Variables []joinghidra.JoinedVariableRecord `json:"variables"`
			}{res.Report, res.Functions, res.Variables}, joinGhidraPretty)
		}
		if err := os.MkdirAll(joinGhidraOut, 0o755); err != nil {
			return err
		}
		return joinghidra.WriteOutputs(joinGhidraOut, res.Report, res.Functions, res.Variables)
	},
}

func init() {
	f := joinGhidraCmd.Flags()
	f.StringVar(&joinGhidraBinary, "binary", "", "path to the compiled binary (required)")
	f.StringVar(&joinGhidraDwarfReport, "dwarf-report", "", "path to oracle_report.json (required with --receipt)")
	f.StringVar(&joinGhidraDwarfFunctions, "dwarf-functions", "", "path to oracle_functions.json (required)")
	f.StringVar(&joinGhidraAlignmentPairs, "alignment-pairs", "", "path to alignment_pairs.json (required)")
	f.StringVar(&joinGhidraGhidraReport, "ghidra-report", "", "path to Ghidra's report.json (required)")
	f.StringVar(&joinGhidraGhidraFunctions, "ghidra-functions", "", "path to Ghidra's functions.jsonl (required)")
	f.StringVar(&joinGhidraGhidraVariables, "ghidra-variables", "", "path to Ghidra's variables.jsonl (required)")
	f.StringVar(&joinGhidraGhidraCFGs, "ghidra-cfg", "", "path to Ghidra's cfg.jsonl (required)")
	f.StringVar(&joinGhidraProfile, "profile", "", "path to a profile file (optional; spec defaults apply)")
	f.StringVar(&joinGhidraOut, "out", "join-ghidra-out", "output directory for join_report.json, joined_functions.jsonl, and joined_variables.jsonl")
	f.BoolVar(&joinGhidraPretty, "pretty", true, "indent stdout output (ignored unless --stdout)")
	f.BoolVar(&joinGhidraStdout, "stdout", false, "print the report, functions, and variables to stdout instead of writing output files")

	f.StringVar(&joinGhidraReceipt, "receipt", "", "path to the build receipt (optional; enables SHA-256 cross-validation)")
	f.StringVar(&joinGhidraOracleOptimization, "oracle-optimization", "", "receipt optimization level the oracle/alignment artifacts were built at")
	f.StringVar(&joinGhidraOracleVariant, "oracle-variant", "", "receipt variant the oracle/alignment artifacts were built at")
	f.BoolVar(&joinGhidraCrossVariant, "cross-variant", false, "validate the Ghidra artifact against a second, explicitly named receipt build")
	f.StringVar(&joinGhidraVariantOptim, "ghidra-optimization", "", "receipt optimization level of the cross-variant Ghidra artifact")
	f.StringVar(&joinGhidraVariantName, "ghidra-variant", "", "receipt variant of the cross-variant Ghidra artifact")

	joinGhidraCmd.MarkFlagRequired("binary")
	joinGhidraCmd.MarkFlagRequired("dwarf-functions")
	joinGhidraCmd.MarkFlagRequired("alignment-pairs")
	joinGhidraCmd.MarkFlagRequired("ghidra-report")
	joinGhidraCmd.MarkFlagRequired("ghidra-functions")
	joinGhidraCmd.MarkFlagRequired("ghidra-variables")
	joinGhidraCmd.MarkFlagRequired("ghidra-cfg")
}
