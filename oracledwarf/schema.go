// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import "sort"

// SchemaVersion is this package's output schema version. join_dwarf_ts
// enforces a floor of 0.2 (the version that introduced LineRows) per
// spec.md §4.14.
const SchemaVersion = "0.2"

// LineRowRecord is one (path, line, count) triple in the sorted JSON
// rendering of a function's evidence multiset.
type LineRowRecord struct {
	File  string `json:"file"`
	Line  int    `json:"line"`
	Count int    `json:"count"`
}

// FileRowCountRecord is one (path, count) pair.
type FileRowCountRecord struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// FunctionRecord is one emitted DWARF function entry.
type FunctionRecord struct {
	ID            string `json:"id"`
	Name          *string `json:"name"`
	LinkageName   *string `json:"linkage_name"`
	DemangledName *string `json:"demangled_name"`

	Ranges []AddrRangeRecord `json:"ranges"`

	DeclFile   string `json:"decl_file"`
	DeclLine   int    `json:"decl_line"`
	DeclColumn int    `json:"decl_column"`
	CompDir    string `json:"comp_dir"`

	Verdict string   `json:"verdict"`
	Reasons []string `json:"reasons"`

	LineRows          []LineRowRecord      `json:"line_rows"`
	FileRowCounts     []FileRowCountRecord `json:"file_row_counts"`
	DominantFile      string               `json:"dominant_file"`
	DominantFileRatio float64              `json:"dominant_file_ratio"`
	LineMin           int                  `json:"line_min"`
	LineMax           int                  `json:"line_max"`
	NLineRows         int                  `json:"n_line_rows"`
}

// AddrRangeRecord is the JSON rendering of an AddrRange.
type AddrRangeRecord struct {
	Low  uint64 `json:"low"`
	High uint64 `json:"high"`
}

// BuildFunctionRecord assembles the emitted record for one function.
func BuildFunctionRecord(fn Function, ev Evidence, verdict Verdict, reasons []string) FunctionRecord {
	rec := FunctionRecord{
		ID:                fn.ID,
		Name:              fn.Name,
		LinkageName:       fn.LinkageName,
		DemangledName:     fn.DemangledName,
		DeclFile:          fn.Decl.File,
		DeclLine:          fn.Decl.Line,
		DeclColumn:        fn.Decl.Column,
		CompDir:           fn.CompDir,
		Verdict:           string(verdict),
		Reasons:           reasons,
		DominantFile:      ev.DominantFile,
		DominantFileRatio: ev.DominantFileRatio,
		LineMin:           ev.LineMin,
		LineMax:           ev.LineMax,
		NLineRows:         ev.NLineRows,
	}
	for _, r := range fn.Ranges {
		rec.Ranges = append(rec.Ranges, AddrRangeRecord{r.Low, r.High})
	}

	if verdict != Reject {
		keys := make([]EvidenceKey, 0, len(ev.LineRows))
		for k := range ev.LineRows {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Path != keys[j].Path {
				return keys[i].Path < keys[j].Path
			}
			return keys[i].Line < keys[j].Line
		})
		for _, k := range keys {
			rec.LineRows = append(rec.LineRows, LineRowRecord{k.Path, k.Line, ev.LineRows[k]})
		}

		files := make([]string, 0, len(ev.FileRowCounts))
		for f := range ev.FileRowCounts {
			files = append(files, f)
		}
		sort.Strings(files)
		for _, f := range files {
			rec.FileRowCounts = append(rec.FileRowCounts, FileRowCountRecord{f, ev.FileRowCounts[f]})
		}
	}

	return rec
}

// Report is oracle_report.json.
type Report struct {
	ProfileID   string   `json:"profile_id"`
	SchemaVer   string   `json:"schema_version"`
	GeneratedAt string   `json:"generated_at"`
	BinaryPath  string   `json:"binary_path"`
	BinarySHA   string   `json:"binary_sha256"`
	BuildID     string   `json:"build_id"`
	Verdict     string   `json:"verdict"`
	Reasons     []string `json:"reasons"`
	Counts      struct {
		Accept int `json:"accept"`
		Warn   int `json:"warn"`
		Reject int `json:"reject"`
	} `json:"counts"`
}
