package codegen

import (
	"testing"

	"github.com/vacay/resonator/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`[{
		"metadata": {
			"artist": "",
			"title": "test recording",
			"duration": 236,
			"bitrate": 192,
			"filename": "/tmp/3.mp3",
			"version": 4.12
		},
		"code_count": 460,
		"code": "eJzVkgsOgCAM"
	}]`)

	out, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "eJzVkgsOgCAM", out.Code)
	assert.Equal(t, 460, out.CodeCount)
	assert.Equal(t, 236, out.Metadata.Duration)
	assert.Equal(t, 4.12, out.Metadata.Version)
	assert.Equal(t, "test recording", out.Metadata.Title)
}

func TestParseInvalid(t *testing.T) {
	// not json at all
	_, err := Parse([]byte("Couldn't decode any file"))
	assert.True(t, errors.Is(errors.DecodeInvalid, err))

	// empty array
	_, err = Parse([]byte("[]"))
	assert.True(t, errors.Is(errors.DecodeInvalid, err))

	// fingerprint without a code
	_, err = Parse([]byte(`[{"metadata": {"duration": 10}}]`))
	assert.True(t, errors.Is(errors.MissingField, err))
}
