package fingerprint

import (
	resonator "github.com/vacay/resonator"
	"github.com/elliotchance/orderedmap/v3"
)

// codesToTimes builds a mapping from each code in the candidate to the time
// offsets it occurs at, with every offset quantized into buckets of width
// slop. Used to speed up the Score calculation.
func codesToTimes(match *resonator.CandidateMatch, slop uint32) map[uint32][]uint32 {
	m := make(map[uint32][]uint32, len(match.Codes))
	for i, code := range match.Codes {
		time := match.Times[i] / slop * slop
		m[code] = append(m[code], time)
	}
	return m
}

// Score computes the refined, time-aligned score of a candidate against the
// query fingerprint and attaches it, with its histogram, to the candidate.
//
// For every code shared between query and candidate the absolute difference
// of their slop-quantized time offsets is collected into a histogram; a true
// match concentrates its mass in one or two adjacent buckets while a spurious
// one spreads out. The score is the sum of the two largest bucket counts,
// which keeps a match that quantization split across two neighbouring deltas
// intact.
//
// Candidates with fewer than minCodes codes score 0 without the expensive
// pass.
func Score(query resonator.Fingerprint, match *resonator.CandidateMatch, minCodes int, slop uint32) int {
	if len(match.Codes) < minCodes {
		match.AScore = 0
		match.Histogram = nil
		return 0
	}

	matchTimes := codesToTimes(match, slop)

	// delta buckets keyed in first-encounter order so ties break the same
	// way on every run
	hist := orderedmap.NewOrderedMap[uint32, int]()

	for i, code := range query.Codes {
		time := query.Times[i] / slop * slop

		for _, mtime := range matchTimes[code] {
			var dist uint32
			if time > mtime {
				dist = time - mtime
			} else {
				dist = mtime - time
			}

			count, _ := hist.Get(dist)
			hist.Set(dist, count+1)
		}
	}

	match.Histogram = hist
	match.AScore = topTwoSum(hist)
	return match.AScore
}

// topTwoSum sums the two largest bucket counts, ties broken by encounter
// order so the result is deterministic
func topTwoSum(hist *resonator.Histogram) int {
	var first, second int
	for count := range hist.Values() {
		if count > first {
			first, second = count, first
		} else if count > second {
			second = count
		}
	}
	return first + second
}
