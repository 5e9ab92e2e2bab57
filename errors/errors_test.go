package errors

import (
	"fmt"
	"testing"

	resonator "github.com/vacay/resonator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapJoin(t *testing.T) {
	var errs []error
	for i := range 10 {
		errs = append(errs, fmt.Errorf("error %d", i))
	}

	// the normal join
	err := Join(errs...)
	require.EqualValues(t, errs, UnwrapJoin(err))

	// wrap the error
	err = E("TestUnwrapJoin", err)
	require.EqualValues(t, errs, UnwrapJoin(err))
}

func TestIs(t *testing.T) {
	err := E(Op("fingerprint/Decode"), DecodeInflate, "short stream")

	assert.True(t, Is(DecodeInflate, err))
	assert.False(t, Is(TrackUnknown, err))

	// wrapping should not hide the kind
	err = E(Op("ingest/Submit"), err)
	assert.True(t, Is(DecodeInflate, err))

	// a non-*Error should never match
	assert.False(t, Is(DecodeInflate, New("plain error")))
}

func TestSelectTrackID(t *testing.T) {
	err := E(Op("mariadb/TrackStorage.Get"), TrackUnknown, resonator.TrackID(500))

	id, ok := SelectTrackID(E(Op("fingerprint/Ingestor.Ingest"), err))
	require.True(t, ok)
	assert.Equal(t, resonator.TrackID(500), id)

	_, ok = SelectTrackID(New("plain error"))
	assert.False(t, ok)
}

func TestErrorMessageDeduplication(t *testing.T) {
	inner := E(Op("inner"), TrackUnknown, resonator.TrackID(10))
	outer := E(Op("outer"), TrackUnknown, resonator.TrackID(10), inner).(*Error)

	// the inner error had its duplicated fields suppressed
	prev := outer.Err.(*Error)
	assert.Equal(t, Other, prev.Kind)
	assert.Zero(t, prev.TrackID)
}
