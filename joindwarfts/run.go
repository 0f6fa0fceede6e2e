// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/dwarfalign/oracledwarf"
	"github.com/aclements/dwarfalign/oraclets"
	"github.com/aclements/dwarfalign/profile"
	"github.com/rs/zerolog"
)

// TU is one preprocessed translation unit's raw input, needed to
// rebuild its origin map alongside its already-computed TS functions.
type TU struct {
	Path      string
	Source    []byte
	SHA256    string
	Functions []oraclets.FunctionRecord
}

// Result is the in-memory output of a single join-dwarf-ts run.
type Result struct {
	Report AlignmentReport
	Pairs  []AlignmentPairRecord
}

// Run implements spec.md §4.14's runner contract for the line-evidence
// join: a pure function from a DWARF oracle report/functions and a set
// of TS translation units to in-memory alignment output. Runners
// enforce version floors on their input schemas and fail fast on a
// mismatch.
func Run(dwarfReport oracledwarf.Report, dwarfFunctions []oracledwarf.FunctionRecord, tsSchemaVer string, tus []TU, p *profile.Profile, log zerolog.Logger) (*Result, error) {
	if !versionAtLeast(dwarfReport.SchemaVer, p.SchemaFloor.DWARFMin) {
		return nil, fmt.Errorf("join-dwarf-ts: DWARF oracle schema %s below floor %s", dwarfReport.SchemaVer, p.SchemaFloor.DWARFMin)
	}
	if !versionAtLeast(tsSchemaVer, p.SchemaFloor.TSMin) {
		return nil, fmt.Errorf("join-dwarf-ts: TS oracle schema %s below floor %s", tsSchemaVer, p.SchemaFloor.TSMin)
	}

	tsByTU := make(map[string][]oraclets.FunctionRecord, len(tus))
	origins := make(map[string]*OriginMap, len(tus))
	tuHashes := make(map[string]string, len(tus))
	for _, tu := range tus {
		tsByTU[tu.Path] = tu.Functions
		tuHashes[tu.Path] = tu.SHA256
		om, err := BuildOriginMap(tu.Path, strings.NewReader(string(tu.Source)), p.ExcludedPathPrefixes)
		if err != nil {
			return nil, fmt.Errorf("join-dwarf-ts: building origin map for %s: %w", tu.Path, err)
		}
		origins[tu.Path] = om
	}

	res := &Result{
		Report: AlignmentReport{
			ProfileID:   p.ID(),
			SchemaVer:   SchemaVersion,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			BinaryPath:  dwarfReport.BinaryPath,
			TUHashes:    tuHashes,
			Thresholds: Thresholds{
				OverlapThreshold: p.OverlapThreshold,
				Epsilon:          p.Epsilon,
				MinOverlapLines:  p.MinOverlapLines,
			},
			ReasonCounts: make(map[string]int),
		},
	}

	for _, fn := range dwarfFunctions {
		if fn.Verdict == "REJECT" {
			res.Report.Counts.NonTarget++
			continue
		}
		pair := ScoreCandidates(fn, tsByTU, origins, p)
		rec := BuildAlignmentPairRecord(pair)
		res.Pairs = append(res.Pairs, rec)

		switch pair.Verdict {
		case Match:
			res.Report.Counts.Match++
		case Ambiguous:
			res.Report.Counts.Ambiguous++
			log.Debug().Str("function", fn.ID).Strs("reasons", pair.Reasons).Msg("join-dwarf-ts: AMBIGUOUS")
		case NoMatch:
			res.Report.Counts.NoMatch++
			log.Debug().Str("function", fn.ID).Strs("reasons", pair.Reasons).Msg("join-dwarf-ts: NO_MATCH")
		}
		for _, r := range pair.Reasons {
			res.Report.ReasonCounts[r]++
		}
	}

	sort.Slice(res.Pairs, func(i, j int) bool { return res.Pairs[i].DWARFFunctionID < res.Pairs[j].DWARFFunctionID })
	res.Report.Summary = ComputeYieldSummary(res.Pairs)

	log.Info().Str("binary", dwarfReport.BinaryPath).Int("match", res.Report.Counts.Match).
		Int("ambiguous", res.Report.Counts.Ambiguous).Int("no_match", res.Report.Counts.NoMatch).
		Msg("join-dwarf-ts: run complete")

	return res, nil
}

// versionAtLeast compares two "major.minor" schema version strings.
func versionAtLeast(v, floor string) bool {
	vMaj, vMin := parseVersion(v)
	fMaj, fMin := parseVersion(floor)
	if vMaj != fMaj {
		return vMaj > fMaj
	}
	return vMin >= fMin
}

func parseVersion(v string) (int, int) {
	parts := strings.SplitN(v, ".", 2)
	maj, _ := strconv.Atoi(parts[0])
	min := 0
	if len(parts) > 1 {
		min, _ = strconv.Atoi(parts[1])
	}
	return maj, min
}
