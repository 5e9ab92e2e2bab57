package fingerprint

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/mocks"
)

func ingestFingerprint(n int) resonator.Fingerprint {
	fp := alignedQuery(n)
	fp.Length = 180
	fp.CodeVersion = 4.12
	fp.TrackName = "qui - quo"
	return fp
}

func TestIngestValidation(t *testing.T) {
	in := NewIngestor(&mocks.StorageServiceMock{})

	for _, c := range []struct {
		name  string
		field string
		fp    resonator.Fingerprint
	}{
		{"no codes", "codes", resonator.Fingerprint{Length: 180, CodeVersion: 4.12}},
		{"negative length", "length", resonator.Fingerprint{Codes: []uint32{1}, Times: []uint32{0}, Length: -1, CodeVersion: 4.12}},
		{"no codever", "codever", resonator.Fingerprint{Codes: []uint32{1}, Times: []uint32{0}, Length: 180}},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := in.Ingest(context.Background(), c.fp)
			require.Error(t, err)
			assert.True(t, errors.Is(errors.MissingField, err))

			serr, ok := errors.Select(errors.MissingField, err)
			require.True(t, ok)
			assert.Equal(t, errors.Info(c.field), serr.Info)
		})
	}
}

func TestIngestCreatesOnMiss(t *testing.T) {
	fp := ingestFingerprint(20)

	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return nil, nil
		},
		CreateFunc: func(created resonator.Fingerprint) (resonator.TrackID, error) {
			assert.Equal(t, fp.Codes, created.Codes)
			assert.Equal(t, fp.TrackName, created.TrackName)
			return 5, nil
		},
	}

	in := NewIngestor(mocks.TrackStore(t, ts))
	res, err := in.Ingest(context.Background(), fp)
	require.NoError(t, err)
	assert.Equal(t, resonator.TrackID(5), res.TrackID)
	assert.Equal(t, fp.TrackName, res.TrackName)
	assert.Len(t, ts.CreateCalls(), 1)
}

func TestIngestNamesUnnamedTrack(t *testing.T) {
	fp := ingestFingerprint(20)

	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return []resonator.CandidateMatch{candidate(3, fp, 20, 1, 20)}, nil
		},
		GetFunc: func(id resonator.TrackID) (*resonator.Track, error) {
			return &resonator.Track{ID: id}, nil
		},
		UpdateNameFunc: func(id resonator.TrackID, name string) error {
			assert.Equal(t, resonator.TrackID(3), id)
			assert.Equal(t, fp.TrackName, name)
			return nil
		},
	}

	in := NewIngestor(mocks.TrackStore(t, ts))
	res, err := in.Ingest(context.Background(), fp)
	require.NoError(t, err)
	assert.Equal(t, resonator.TrackID(3), res.TrackID)
	assert.Equal(t, fp.TrackName, res.TrackName)
	assert.Len(t, ts.UpdateNameCalls(), 1)
	assert.Empty(t, ts.CreateCalls())
}

func TestIngestKeepsExistingName(t *testing.T) {
	// a track that already has a name keeps it, whatever the submission says
	fp := ingestFingerprint(20)

	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return []resonator.CandidateMatch{candidate(3, fp, 20, 1, 20)}, nil
		},
		GetFunc: func(id resonator.TrackID) (*resonator.Track, error) {
			return &resonator.Track{ID: id, Name: "first name wins"}, nil
		},
	}

	in := NewIngestor(mocks.TrackStore(t, ts))
	res, err := in.Ingest(context.Background(), fp)
	require.NoError(t, err)
	assert.Equal(t, "first name wins", res.TrackName)
	assert.Empty(t, ts.UpdateNameCalls())
}

func TestIngestConcurrentDuplicates(t *testing.T) {
	// k concurrent submissions of the same recording must produce exactly
	// one track, everyone else resolves to it
	const k = 8
	fp := ingestFingerprint(20)

	var mu sync.Mutex
	var created bool

	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			mu.Lock()
			defer mu.Unlock()
			if !created {
				return nil, nil
			}
			return []resonator.CandidateMatch{candidate(1, fp, 20, 1, 20)}, nil
		},
		CreateFunc: func(_ resonator.Fingerprint) (resonator.TrackID, error) {
			mu.Lock()
			defer mu.Unlock()
			if created {
				t.Error("duplicate track created")
			}
			created = true
			return 1, nil
		},
		GetFunc: func(id resonator.TrackID) (*resonator.Track, error) {
			return &resonator.Track{ID: id, Name: fp.TrackName}, nil
		},
	}

	in := NewIngestor(mocks.TrackStore(t, ts))

	results := make([]*resonator.IngestResult, k)
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := in.Ingest(context.Background(), fp)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	assert.Len(t, ts.CreateCalls(), 1)
	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, resonator.TrackID(1), res.TrackID)
	}
}

func TestIngestorBestMatchDoesNotCreate(t *testing.T) {
	fp := ingestFingerprint(20)

	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return nil, nil
		},
	}

	in := NewIngestor(mocks.TrackStore(t, ts))
	res, err := in.BestMatch(context.Background(), fp)
	require.NoError(t, err)
	assert.Equal(t, resonator.NoResults, res.Status)
	assert.Empty(t, ts.CreateCalls())
}
