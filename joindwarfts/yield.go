// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joindwarfts

import "github.com/aclements/go-moremath/stats"

// ComputeYieldSummary computes the informational mean/median
// overlap_ratio across every MATCH pair's best candidate (spec.md §4.9
// supplement). It never affects any verdict.
func ComputeYieldSummary(pairs []AlignmentPairRecord) YieldSummary {
	var ratios []float64
	for _, p := range pairs {
		if p.Verdict != string(Match) || p.OverlapRatio == nil {
			continue
		}
		ratios = append(ratios, *p.OverlapRatio)
	}
	if len(ratios) == 0 {
		return YieldSummary{}
	}

	sample := stats.Sample{Xs: ratios}
	return YieldSummary{
		MeanOverlapRatio:   sample.Mean(),
		MedianOverlapRatio: sample.Quantile(0.5),
		N:                  len(ratios),
	}
}
