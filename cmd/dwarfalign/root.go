// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"

	"github.com/aclements/dwarfalign/internal/jsonio"
	"github.com/aclements/dwarfalign/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "dwarfalign",
	Short: "Align DWARF, tree-sitter, and Ghidra views of one compiled binary",
	Long: `dwarfalign runs the four stages that turn a compiled binary and its
source tree into a joined, address-addressable map of every function and
variable: the DWARF oracle, the tree-sitter oracle, the line-evidence
join between them, and the final join against a Ghidra extraction.`,
}

// Execute runs rootCmd (its child commands are added in init). Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(oracleDWARFCmd, oracleTSCmd, joinTSCmd, joinGhidraCmd)
}

func newLogger() zerolog.Logger {
	return logging.New(logLevel, os.Stderr)
}

// printJSON renders v to stdout, indented unless compact is requested.
func printJSON(v interface{}, pretty bool) error {
	if pretty {
		return jsonio.EncodeJSON(os.Stdout, v)
	}
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}
