package fingerprint

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/mocks"
)

// candidate builds a CandidateMatch overlapping the first overlap codes of
// the query, all at time offset zero. Repeating each overlapped code repeat
// times inflates the refined score without changing the coarse one.
func candidate(id resonator.TrackID, query resonator.Fingerprint, overlap, repeat, score int) resonator.CandidateMatch {
	m := resonator.CandidateMatch{TrackID: id, Score: score}
	for r := 0; r < repeat; r++ {
		m.Codes = append(m.Codes, query.Codes[:overlap]...)
		m.Times = append(m.Times, make([]uint32, overlap)...)
	}
	return m
}

func candidateStore(t *testing.T, matches []resonator.CandidateMatch, tracks map[resonator.TrackID]*resonator.Track) *mocks.TrackStorageMock {
	return &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return matches, nil
		},
		GetFunc: func(id resonator.TrackID) (*resonator.Track, error) {
			track, ok := tracks[id]
			if !ok {
				return nil, errors.E(errors.TrackUnknown, id)
			}
			return track, nil
		},
	}
}

func TestBestMatchNoCodes(t *testing.T) {
	ts := candidateStore(t, nil, nil)

	_, err := BestMatch(context.Background(), ts, resonator.Fingerprint{})
	require.Error(t, err)
	assert.True(t, errors.Is(errors.InvalidArgument, err))
	assert.Empty(t, ts.QueryByCodesCalls(), "storage should not be hit without codes")
}

func TestBestMatchNoResults(t *testing.T) {
	ts := candidateStore(t, nil, nil)

	res, err := BestMatch(context.Background(), ts, alignedQuery(20))
	require.NoError(t, err)
	assert.Equal(t, resonator.NoResults, res.Status)
	assert.Nil(t, res.Track)
}

func TestBestMatchStorageError(t *testing.T) {
	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return nil, errors.E(errors.Testing)
		},
	}

	_, err := BestMatch(context.Background(), ts, alignedQuery(20))
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Testing, err))
}

func TestBestMatchCoarseReject(t *testing.T) {
	query := alignedQuery(20)
	// best coarse overlap is 10 of 20 codes, well under the threshold
	ts := candidateStore(t, []resonator.CandidateMatch{
		candidate(1, query, 10, 1, 10),
	}, nil)

	res, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)
	assert.Equal(t, resonator.MultipleBadHistogramMatch, res.Status)
	assert.Empty(t, ts.GetCalls())
}

func TestBestMatchHistogramDecreased(t *testing.T) {
	query := alignedQuery(20)
	// coarse score claims a near-full overlap but the candidate only has a
	// handful of codes, so refinement rejects it outright
	ts := candidateStore(t, []resonator.CandidateMatch{
		candidate(1, query, 5, 1, 20),
	}, nil)

	res, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)
	assert.Equal(t, resonator.NoResultsHistogramDecreased, res.Status)
}

func TestBestMatchSingleGood(t *testing.T) {
	query := alignedQuery(20)
	track := &resonator.Track{ID: 1, Name: "qui", Length: 180}
	ts := candidateStore(t, []resonator.CandidateMatch{
		candidate(1, query, 20, 1, 20),
	}, map[resonator.TrackID]*resonator.Track{1: track})

	res, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)
	assert.Equal(t, resonator.SingleGoodMatch, res.Status)
	require.NotNil(t, res.Match)
	assert.Equal(t, 20, res.Match.AScore)
	assert.Equal(t, track, res.Track)
}

func TestBestMatchSingleGoodTrackMissing(t *testing.T) {
	query := alignedQuery(20)
	// winner decided but its metadata is gone from the store
	ts := candidateStore(t, []resonator.CandidateMatch{
		candidate(1, query, 20, 1, 20),
	}, nil)

	_, err := BestMatch(context.Background(), ts, query)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.TrackUnknown, err))
}

func TestBestMatchMarginReject(t *testing.T) {
	// refined scores 95 and 50 with 55 query codes: the winner leads by 45
	// but needs to lead by half its own score, 47.5, so it is rejected
	query := alignedQuery(55)
	ts := candidateStore(t, []resonator.CandidateMatch{
		withExtraOverlap(candidate(1, query, 55, 1, 95), query, 40),
		candidate(2, query, 50, 1, 50),
	}, nil)

	res, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)
	assert.Equal(t, resonator.MultipleBadHistogramMatch, res.Status)
	assert.Empty(t, ts.GetCalls())
}

func TestBestMatchRefinementHalved(t *testing.T) {
	// the top candidate's refined score of 19 is at most half its coarse
	// score of 40, a coarse match that dissolves under time alignment
	query := alignedQuery(20)
	ts := candidateStore(t, []resonator.CandidateMatch{
		candidate(1, query, 19, 1, 40),
		candidate(2, query, 18, 1, 18),
	}, nil)

	res, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)
	assert.Equal(t, resonator.MultipleBadHistogramMatch, res.Status)
}

func TestBestMatchMultipleGood(t *testing.T) {
	query := alignedQuery(20)
	track := &resonator.Track{ID: 7, Name: "quo"}
	// top refined score 40 against a runner-up at 18 clears every margin
	ts := candidateStore(t, []resonator.CandidateMatch{
		candidate(2, query, 18, 1, 18),
		candidate(7, query, 20, 2, 20),
	}, map[resonator.TrackID]*resonator.Track{7: track})

	res, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)
	assert.Equal(t, resonator.MultipleGoodMatch, res.Status)
	require.NotNil(t, res.Match)
	assert.Equal(t, resonator.TrackID(7), res.Match.TrackID)
	assert.Equal(t, track, res.Track)
}

func TestBestMatchClampsBeforeQuery(t *testing.T) {
	// codes past the clamp window should never reach storage
	query := alignedQuery(20)
	for i := 10; i < 20; i++ {
		query.Times[i] = 9000
	}

	ts := candidateStore(t, nil, nil)
	_, err := BestMatch(context.Background(), ts, query)
	require.NoError(t, err)

	calls := ts.QueryByCodesCalls()
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].Codes, 10)
	assert.Equal(t, MaxRows, calls[0].Limit)
}

// withExtraOverlap appends extra occurrences of the query's leading codes,
// pushing the refined score up by extra without touching the coarse score
func withExtraOverlap(m resonator.CandidateMatch, query resonator.Fingerprint, extra int) resonator.CandidateMatch {
	m.Codes = append(m.Codes, query.Codes[:extra]...)
	m.Times = append(m.Times, make([]uint32, extra)...)
	return m
}

func TestBestMatchTotality(t *testing.T) {
	known := []resonator.MatchStatus{
		resonator.NoResults,
		resonator.NoResultsHistogramDecreased,
		resonator.SingleGoodMatch,
		resonator.SingleBadMatch,
		resonator.MultipleGoodMatch,
		resonator.MultipleBadHistogramMatch,
	}

	genValues := gen.SliceOfN(24, gen.UInt32Range(0, 1<<20-1))
	genCandidates := gen.SliceOf(genValues)

	p := gopter.NewProperties(nil)
	// every storage answer decides to exactly one known status, with a
	// winner attached only on the good ones
	p.Property("total", prop.ForAll(func(q []uint32, raw [][]uint32) bool {
		query := resonator.Fingerprint{Codes: q[:12], Times: q[12:]}

		matches := make([]resonator.CandidateMatch, len(raw))
		for i, vals := range raw {
			matches[i] = resonator.CandidateMatch{
				TrackID: resonator.TrackID(i + 1),
				Codes:   vals[:12],
				Times:   vals[12:],
				Score:   12,
			}
		}

		ts := &mocks.TrackStorageMock{
			QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
				return matches, nil
			},
			GetFunc: func(id resonator.TrackID) (*resonator.Track, error) {
				return &resonator.Track{ID: id}, nil
			},
		}

		res, err := BestMatch(context.Background(), ts, query)
		if err != nil {
			return false
		}

		var ok bool
		for _, s := range known {
			ok = ok || res.Status == s
		}
		if res.Status.Good() {
			ok = ok && res.Match != nil && res.Track != nil
		} else {
			ok = ok && res.Match == nil && res.Track == nil
		}
		return ok
	}, genValues, genCandidates))
	p.TestingRun(t)
}
