// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracledwarf

import (
	"debug/dwarf"
	"io"
	"math"
	"sort"
)

// EvidenceKey is a (source_file_path, source_line) pair: one slot in a
// function's line-evidence multiset.
type EvidenceKey struct {
	Path string
	Line int
}

// Evidence is a function's line-evidence multiset (spec.md §3).
type Evidence struct {
	LineRows      map[EvidenceKey]int
	FileRowCounts map[string]int

	DominantFile      string
	DominantFileRatio float64
	LineMin, LineMax  int
	NLineRows         int
}

// inRanges reports whether addr falls within any of fn's half-open
// address ranges.
func inRanges(ranges []AddrRange, addr uint64) bool {
	for _, r := range ranges {
		if addr >= r.Low && addr < r.High {
			return true
		}
	}
	return false
}

// ComputeEvidence replays each CU's line program exactly once
// (spec.md §5 design note) and buckets every row into the evidence
// multiset of whichever function in that CU claims its address.
// Functions with no ranges (declarations) are skipped entirely; their
// evidence is empty per spec.md §3's REJECT invariant.
func (b *Binary) ComputeEvidence(functions []Function) (map[string]Evidence, error) {
	out := make(map[string]Evidence, len(functions))

	byCU := make(map[dwarf.Offset][]*Function)
	for i := range functions {
		fn := &functions[i]
		if len(fn.Ranges) == 0 {
			continue
		}
		byCU[fn.CUOffset] = append(byCU[fn.CUOffset], fn)
	}
	if len(byCU) == 0 {
		return out, nil
	}

	cus, err := b.CompilationUnits()
	if err != nil {
		return nil, err
	}

	accum := make(map[string]map[EvidenceKey]int, len(functions))

	for _, cu := range cus {
		fns, ok := byCU[cu.Offset]
		if !ok {
			continue
		}
		lr, err := b.dwarf.LineReader(cu.Entry)
		if err != nil || lr == nil {
			continue
		}

		var entry dwarf.LineEntry
		for {
			if err := lr.Next(&entry); err != nil {
				if err == io.EOF {
					break
				}
				return nil, err
			}
			if entry.EndSequence || entry.File == nil {
				continue
			}
			for _, fn := range fns {
				if !inRanges(fn.Ranges, entry.Address) {
					continue
				}
				m := accum[fn.ID]
				if m == nil {
					m = make(map[EvidenceKey]int)
					accum[fn.ID] = m
				}
				m[EvidenceKey{entry.File.Name, entry.Line}]++
			}
		}
	}

	for id, rows := range accum {
		out[id] = summarize(rows)
	}
	return out, nil
}

func summarize(rows map[EvidenceKey]int) Evidence {
	ev := Evidence{LineRows: rows, FileRowCounts: make(map[string]int)}
	for k, c := range rows {
		ev.FileRowCounts[k.Path] += c
		ev.NLineRows += c
	}
	if ev.NLineRows == 0 {
		return ev
	}

	ev.DominantFile = dominantFile(ev.FileRowCounts)
	ev.DominantFileRatio = round4(float64(ev.FileRowCounts[ev.DominantFile]) / float64(ev.NLineRows))

	first := true
	for line := range linesInFile(rows, ev.DominantFile) {
		if first || line < ev.LineMin {
			ev.LineMin = line
		}
		if first || line > ev.LineMax {
			ev.LineMax = line
		}
		first = false
	}
	return ev
}

func linesInFile(rows map[EvidenceKey]int, file string) map[int]bool {
	out := make(map[int]bool)
	for k := range rows {
		if k.Path == file {
			out[k.Line] = true
		}
	}
	return out
}

// dominantFile returns the path with the most rows, breaking ties
// lexicographically (spec.md §4.3; the multi-file near-equal-ratio
// tie-break edge case is flagged, not guessed, per spec.md §9 open
// question (b)).
func dominantFile(counts map[string]int) string {
	best := ""
	bestN := -1
	paths := make([]string, 0, len(counts))
	for p := range counts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if counts[p] > bestN {
			best, bestN = p, counts[p]
		}
	}
	return best
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
