package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/fingerprint"
	"github.com/vacay/resonator/mocks"
)

func testPayload() string {
	fp := resonator.Fingerprint{
		Codes: make([]uint32, 20),
		Times: make([]uint32, 20),
	}
	for i := range fp.Codes {
		fp.Codes[i] = uint32(i + 1)
	}
	return fingerprint.Encode(fp)
}

func TestSubmitValidation(t *testing.T) {
	in := fingerprint.NewIngestor(&mocks.StorageServiceMock{})

	for _, c := range []struct {
		name string
		sub  Submission
		kind errors.Kind
	}{
		{"no code", Submission{Version: CodeVersion, Duration: 180}, errors.MissingField},
		{"no version", Submission{Code: testPayload(), Duration: 180}, errors.MissingField},
		{"wrong version", Submission{Code: testPayload(), Version: 4.11, Duration: 180}, errors.VersionMismatch},
		{"no duration", Submission{Code: testPayload(), Version: CodeVersion}, errors.MissingField},
		{"negative duration", Submission{Code: testPayload(), Version: CodeVersion, Duration: -30}, errors.MissingField},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := Submit(context.Background(), in, c.sub)
			require.Error(t, err)
			assert.True(t, errors.Is(c.kind, err))
		})
	}
}

func TestSubmitEmptyFingerprint(t *testing.T) {
	in := fingerprint.NewIngestor(&mocks.StorageServiceMock{})

	// decodes fine but holds no codes at all
	sub := Submission{
		Code:     fingerprint.Encode(resonator.Fingerprint{}),
		Version:  CodeVersion,
		Duration: 180,
	}

	_, err := Submit(context.Background(), in, sub)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.DecodeInvalid, err))
}

func TestSubmit(t *testing.T) {
	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return nil, nil
		},
		CreateFunc: func(fp resonator.Fingerprint) (resonator.TrackID, error) {
			assert.Len(t, fp.Codes, 20)
			assert.Equal(t, CodeVersion, fp.CodeVersion)
			assert.Equal(t, 180, fp.Length)
			assert.Equal(t, "qui - quo", fp.TrackName)
			return 9, nil
		},
	}

	in := fingerprint.NewIngestor(mocks.TrackStore(t, ts))
	res, err := Submit(context.Background(), in, Submission{
		Code:     testPayload(),
		Version:  CodeVersion,
		Duration: 180,
		Title:    "qui - quo",
	})
	require.NoError(t, err)
	assert.Equal(t, resonator.TrackID(9), res.TrackID)
	assert.Equal(t, "qui - quo", res.TrackName)
	assert.Len(t, ts.CreateCalls(), 1)
}
