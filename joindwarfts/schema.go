// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

// SchemaVersion is this package's output schema version.
const SchemaVersion = "0.1"

// Verdict is a candidate-scoring outcome (spec.md §4.9).
type Verdict string

const (
	Match     Verdict = "MATCH"
	Ambiguous Verdict = "AMBIGUOUS"
	NoMatch   Verdict = "NO_MATCH"
)

// Candidate-scoring reasons (spec.md §4.9).
const (
	ReasonNoCandidates                = "NO_CANDIDATES"
	ReasonLowOverlapRatio             = "LOW_OVERLAP_RATIO"
	ReasonNearTie                     = "NEAR_TIE"
	ReasonHeaderReplicationCollision  = "HEADER_REPLICATION_COLLISION"
	ReasonUniqueBest                  = "UNIQUE_BEST"
	ReasonPCLineGap                   = "PC_LINE_GAP"
)

// AlignmentPair is one DWARF function's scoring outcome.
type AlignmentPair struct {
	DWARFFunctionID string
	Verdict         Verdict
	Reasons         []string
	Best            *Candidate
	NearTies        []Candidate
}

// AlignmentPairRecord is the JSON rendering of an AlignmentPair.
type AlignmentPairRecord struct {
	DWARFFunctionID string   `json:"dwarf_function_id"`
	Verdict         string   `json:"verdict"`
	Reasons         []string `json:"reasons"`

	TSFunctionID    *string  `json:"ts_function_id"`
	TUPath          *string  `json:"tu_path"`
	OverlapCount    *int     `json:"overlap_count"`
	OverlapRatio    *float64 `json:"overlap_ratio"`
	GapCount        *int     `json:"gap_count"`

	NearTieIDs []string `json:"near_tie_ts_function_ids"`
}

// BuildAlignmentPairRecord assembles the emitted record for one pair.
func BuildAlignmentPairRecord(p AlignmentPair) AlignmentPairRecord {
	rec := AlignmentPairRecord{
		DWARFFunctionID: p.DWARFFunctionID,
		Verdict:         string(p.Verdict),
		Reasons:         p.Reasons,
	}
	if p.Best != nil {
		id := p.Best.TSFunc.ID
		tu := p.Best.TSFunc.TUPath
		oc := p.Best.OverlapCount
		or := p.Best.OverlapRatio
		gc := p.Best.GapCount
		rec.TSFunctionID = &id
		rec.TUPath = &tu
		rec.OverlapCount = &oc
		rec.OverlapRatio = &or
		rec.GapCount = &gc
	}
	for _, t := range p.NearTies {
		rec.NearTieIDs = append(rec.NearTieIDs, t.TSFunc.ID)
	}
	return rec
}

// NonTargetRecord documents a DWARF function excluded from scoring
// because its oracle-DWARF verdict was REJECT (spec.md §4.9 operates
// only on join targets).
type NonTargetRecord struct {
	DWARFFunctionID string `json:"dwarf_function_id"`
	Reasons         []string `json:"reasons"`
}

// AlignmentReport is alignment_report.json.
type AlignmentReport struct {
	ProfileID   string         `json:"profile_id"`
	SchemaVer   string         `json:"schema_version"`
	GeneratedAt string         `json:"generated_at"`
	BinaryPath  string         `json:"binary_path"`
	TUHashes    map[string]string `json:"tu_hashes"`
	Thresholds  Thresholds     `json:"thresholds"`
	Counts      struct {
		Match     int `json:"match"`
		Ambiguous int `json:"ambiguous"`
		NoMatch   int `json:"no_match"`
		NonTarget int `json:"non_target"`
	} `json:"counts"`
	ReasonCounts map[string]int `json:"reason_counts"`

	// Summary is informational only, not used in any verdict
	// decision, and is explicitly exempt from byte-equality checks
	// beyond its own internal key order (spec.md §4.9 supplement).
	Summary YieldSummary `json:"summary"`
}

// YieldSummary is the mean/median overlap_ratio across every MATCH
// verdict in a run, computed once by go-moremath/stats.
type YieldSummary struct {
	MeanOverlapRatio   float64 `json:"mean_overlap_ratio"`
	MedianOverlapRatio float64 `json:"median_overlap_ratio"`
	N                  int     `json:"n"`
}

// Thresholds records the policy constants this run applied, so a
// report is self-describing even without its profile file at hand.
type Thresholds struct {
	OverlapThreshold float64 `json:"overlap_threshold"`
	Epsilon          float64 `json:"epsilon"`
	MinOverlapLines  int     `json:"min_overlap_lines"`
}
