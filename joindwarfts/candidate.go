// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import (
	"math"
	"sort"

	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/oraclets"
	"github.com/aclements/dwarfalign/profile"
)

// evidenceKey has the same shape as oracledwarf.EvidenceKey: a
// (path, line) slot in a DWARF function's line-evidence multiset,
// rebuilt here from the emitted LineRowRecords.
type evidenceKey struct {
	Path string
	Line int
}

// buildEvidence rebuilds the evidence multiset from a DWARF
// FunctionRecord's already-sorted LineRows, as emitted to disk or held
// in memory from the same run.
func buildEvidence(rows []oracledwarf.LineRowRecord) (map[evidenceKey]int, int) {
	ev := make(map[evidenceKey]int, len(rows))
	total := 0
	for _, r := range rows {
		ev[evidenceKey{r.File, r.Line}] += r.Count
		total += r.Count
	}
	return ev, total
}

// Candidate is one TS function scored against a single DWARF function's
// evidence.
type Candidate struct {
	TSFunc       oraclets.FunctionRecord
	OverlapCount int
	OverlapRatio float64
	GapCount     int
	SpanSize     uint32
}

// ScoreCandidates implements spec.md §4.9 for one DWARF join-target
// function against every TS function across every TU. tsByTU maps TU
// path to its extracted TS functions; origins maps TU path to its
// origin map.
func ScoreCandidates(dwarfFn oracledwarf.FunctionRecord, tsByTU map[string][]oraclets.FunctionRecord, origins map[string]*OriginMap, p *profile.Profile) AlignmentPair {
	evidence, total := buildEvidence(dwarfFn.LineRows)

	var candidates []Candidate
	for tuPath, fns := range tsByTU {
		om := origins[tuPath]
		if om == nil {
			continue
		}
		for _, fn := range fns {
			overlap := 0
			for line := fn.Span.StartLine; line <= fn.Span.EndLine; line++ {
				origin := om.At(line)
				if origin == nil {
					continue
				}
				if count, ok := evidence[evidenceKey{origin.Path, origin.Line}]; ok {
					overlap += count
				}
			}
			if overlap == 0 {
				continue
			}
			candidates = append(candidates, Candidate{
				TSFunc:       fn,
				OverlapCount: overlap,
				OverlapRatio: round6(float64(overlap) / float64(total)),
				GapCount:     total - overlap,
				SpanSize:     fn.Span.EndByte - fn.Span.StartByte,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.OverlapRatio != b.OverlapRatio {
			return a.OverlapRatio > b.OverlapRatio
		}
		if a.OverlapCount != b.OverlapCount {
			return a.OverlapCount > b.OverlapCount
		}
		if a.SpanSize != b.SpanSize {
			return a.SpanSize < b.SpanSize
		}
		if a.TSFunc.TUPath != b.TSFunc.TUPath {
			return a.TSFunc.TUPath < b.TSFunc.TUPath
		}
		return a.TSFunc.Span.StartByte < b.TSFunc.Span.StartByte
	})

	pair := AlignmentPair{DWARFFunctionID: dwarfFn.ID}
	if len(candidates) == 0 {
		pair.Verdict = NoMatch
		pair.Reasons = []string{ReasonNoCandidates}
		return pair
	}

	best := candidates[0]
	if best.OverlapCount < p.MinOverlapLines {
		pair.Verdict = NoMatch
		pair.Reasons = []string{ReasonNoCandidates}
		return pair
	}

	var reasons []string
	if best.OverlapRatio < p.OverlapThreshold {
		reasons = append(reasons, ReasonLowOverlapRatio)
		pair.Verdict = NoMatch
		pair.Reasons = reasons
		pair.Best = &best
		return pair
	}

	var nearTies []Candidate
	for _, c := range candidates[1:] {
		if best.OverlapRatio-c.OverlapRatio <= p.Epsilon {
			nearTies = append(nearTies, c)
		}
	}

	if best.GapCount > 0 {
		reasons = append(reasons, ReasonPCLineGap)
	}

	if len(nearTies) > 0 {
		reasons = append(reasons, ReasonNearTie)
		for _, t := range nearTies {
			if t.TSFunc.ContextHash == best.TSFunc.ContextHash && t.TSFunc.TUPath != best.TSFunc.TUPath {
				reasons = append(reasons, ReasonHeaderReplicationCollision)
				break
			}
		}
		pair.Verdict = Ambiguous
		pair.Reasons = reasons
		pair.Best = &best
		pair.NearTies = nearTies
		return pair
	}

	reasons = append(reasons, ReasonUniqueBest)
	pair.Verdict = Match
	pair.Reasons = reasons
	pair.Best = &best
	return pair
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
