package fingerprint

import (
	"context"
	"slices"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/rs/zerolog"
)

// BestMatch finds the closest matching track, if any, to the fingerprint
// given. The fingerprint is clamped to MaxClampSeconds of codes before
// querying.
//
// A result is returned for every lookup that reaches storage successfully;
// "no match" outcomes are normal results, not errors. The policy is
// deliberately conservative: ambiguity between similarly scoring candidates
// is reported as MultipleBadHistogramMatch rather than guessed at.
func BestMatch(ctx context.Context, ts resonator.TrackStorage, fp resonator.Fingerprint) (*resonator.MatchResult, error) {
	const op errors.Op = "fingerprint/BestMatch"
	log := zerolog.Ctx(ctx)

	fp = ClampDuration(ctx, fp, MaxClampSeconds)

	if len(fp.Codes) == 0 {
		return nil, errors.E(op, errors.InvalidArgument, errors.Info("codes"),
			"no valid fingerprint codes specified")
	}

	n := float64(len(fp.Codes))
	log.Debug().Int("codes", len(fp.Codes)).Msg("starting query")

	matches, err := ts.QueryByCodes(fp.Codes, MaxRows)
	if err != nil {
		return nil, errors.E(op, err)
	}

	if len(matches) == 0 {
		log.Debug().Msg("no matched tracks")
		return &resonator.MatchResult{Status: resonator.NoResults}, nil
	}

	log.Debug().
		Int("matches", len(matches)).
		Int("top_overlap", matches[0].Score).
		Msg("matched tracks")

	// if the best result matched fewer codes than our percentage threshold
	// there is no point in doing the expensive refinement
	if float64(matches[0].Score) < n*MinMatchPercent {
		log.Debug().Int("score", matches[0].Score).Msg("multiple bad match score")
		return &resonator.MatchResult{Status: resonator.MultipleBadHistogramMatch}, nil
	}

	// compute refined scores by taking time offsets into account, dropping
	// every candidate that does not hold up
	survivors := matches[:0]
	for i := range matches {
		ascore := Score(fp, &matches[i], CodeThreshold, MatchSlop)
		if ascore > 0 && float64(ascore) >= n*MinMatchPercent {
			survivors = append(survivors, matches[i])
		}
	}

	if len(survivors) == 0 {
		log.Debug().Msg("no matched tracks after score adjustment")
		return &resonator.MatchResult{Status: resonator.NoResultsHistogramDecreased}, nil
	}

	// sort strictly by refined score, highest first
	slices.SortStableFunc(survivors, func(a, b resonator.CandidateMatch) int {
		return b.AScore - a.AScore
	})

	if len(survivors) == 1 {
		single := survivors[0]
		if float64(single.AScore)/n >= MinMatchPercent {
			log.Debug().Int("ascore", single.AScore).Msg("single good match")
			return withTrack(ctx, ts, resonator.SingleGoodMatch, single)
		}

		log.Debug().Int("ascore", single.AScore).Msg("single bad match")
		return &resonator.MatchResult{Status: resonator.SingleBadMatch}, nil
	}

	top, second := survivors[0], survivors[1]
	log.Debug().
		Int("top_ascore", top.AScore).
		Int("second_ascore", second.AScore).
		Msg("refined scores")

	// the top result has to match our percentage threshold on the refined
	// score too
	if float64(top.AScore) < n*MinMatchPercent {
		log.Debug().Int("ascore", top.AScore).Msg("multiple bad match score (percentage)")
		return &resonator.MatchResult{Status: resonator.MultipleBadHistogramMatch}, nil
	}

	// refinement must not have halved (or worse) the candidate's standing
	// compared to its coarse overlap count, a coarse match that dissolves
	// under strict time alignment is no match
	if float64(top.AScore) <= float64(top.Score)/2 {
		log.Debug().
			Int("ascore", top.AScore).
			Int("score", top.Score).
			Msg("multiple bad match score (not close enough)")
		return &resonator.MatchResult{Status: resonator.MultipleBadHistogramMatch}, nil
	}

	// the winner has to beat the runner-up by at least half its own score
	if float64(top.AScore-second.AScore) < float64(top.AScore)/2 {
		log.Debug().
			Int("ascore", top.AScore).
			Int("second", second.AScore).
			Msg("multiple bad match score (second match)")
		return &resonator.MatchResult{Status: resonator.MultipleBadHistogramMatch}, nil
	}

	return withTrack(ctx, ts, resonator.MultipleGoodMatch, top)
}

// withTrack attaches the stored track metadata to a winning match
func withTrack(ctx context.Context, ts resonator.TrackStorage, status resonator.MatchStatus, match resonator.CandidateMatch) (*resonator.MatchResult, error) {
	const op errors.Op = "fingerprint/withTrack"

	track, err := ts.Get(match.TrackID)
	if err != nil {
		return nil, errors.E(op, err, match.TrackID)
	}

	return &resonator.MatchResult{
		Status: status,
		Match:  &match,
		Track:  track,
	}, nil
}
