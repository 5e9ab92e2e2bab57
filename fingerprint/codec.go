// Package fingerprint implements the acoustic fingerprint matching engine:
// decoding the transport encoding into code/time pairs, scoring candidate
// tracks with a time-aligned histogram and deciding on a final match.
package fingerprint

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/rs/zerolog"
)

const (
	// SecondsToTimestamp is the number of fingerprinter ticks per second
	// in the time domain
	SecondsToTimestamp = 43.45
	// MaxClampSeconds is the amount of audio ClampDuration keeps by default
	MaxClampSeconds = 60
	// MaxRows is the number of candidate tracks considered per query
	MaxRows = 30
	// MinMatchPercent is the fraction of query codes a candidate has to
	// match to be considered
	MinMatchPercent = 0.9
	// MatchSlop is the tolerance window, in ticks, used to bucket time
	// offsets before comparing them
	MatchSlop = 2
	// CodeThreshold is the minimum amount of codes a candidate needs
	// before refined scoring is worth doing
	CodeThreshold = 10
)

// tupleWidth is the width of a single hex-encoded value in the wire format,
// 5 hex characters for 20 bits
const tupleWidth = 5

// Decode decodes the transport encoding of a fingerprint into code/time
// pairs.
//
// The wire format is URL-safe base64 of a zlib-compressed ASCII buffer of
// fixed-width hexadecimal tuples, where the first half of the tuples are
// time offsets and the second half the codes. A payload that fails to
// decompress is a hard error; a tuple that fails to parse degrades to an
// empty fingerprint instead.
func Decode(ctx context.Context, payload string) (resonator.Fingerprint, error) {
	const op errors.Op = "fingerprint/Decode"

	// fix url-safe characters back to the standard alphabet
	payload = strings.ReplaceAll(payload, "-", "+")
	payload = strings.ReplaceAll(payload, "_", "/")

	compressed, err := base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(payload, "="))
	if err != nil {
		return resonator.Fingerprint{}, errors.E(op, errors.DecodeInvalid, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return resonator.Fingerprint{}, errors.E(op, errors.DecodeInflate, err)
	}
	defer zr.Close()

	uncompressed, err := io.ReadAll(zr)
	if err != nil {
		return resonator.Fingerprint{}, errors.E(op, errors.DecodeInflate, err)
	}

	fp := parseTuples(ctx, uncompressed)
	zerolog.Ctx(ctx).Debug().
		Int("payload_length", len(payload)).
		Int("codes", len(fp.Codes)).
		Msg("inflated code string")
	return fp, nil
}

// parseTuples converts an uncompressed buffer of zero-padded fixed-width hex
// integers into code/time pairs. The buffer holds count tuples, the first
// count/2 are time offsets and the rest are codes.
func parseTuples(ctx context.Context, buf []byte) resonator.Fingerprint {
	count := len(buf) / tupleWidth
	half := count / 2

	codes := make([]uint32, half)
	times := make([]uint32, half)
	for i := 0; i < half; i++ {
		t, terr := parseTuple(buf, i)
		c, cerr := parseTuple(buf, half+i)
		if terr != nil || cerr != nil {
			// degrade to an empty fingerprint rather than abort
			zerolog.Ctx(ctx).Error().
				Int("index", i).
				Msg("failed to parse code/time tuple")
			return resonator.Fingerprint{Codes: []uint32{}, Times: []uint32{}}
		}
		times[i] = t
		codes[i] = c
	}

	return resonator.Fingerprint{Codes: codes, Times: times}
}

func parseTuple(buf []byte, i int) (uint32, error) {
	v, err := strconv.ParseUint(string(buf[i*tupleWidth:(i+1)*tupleWidth]), 16, 32)
	return uint32(v), err
}

// Encode is the inverse of Decode, producing the wire format for the
// code/time pairs of the fingerprint given. Values have to fit in 20 bits.
func Encode(fp resonator.Fingerprint) string {
	var buf bytes.Buffer
	for _, t := range fp.Times {
		fmt.Fprintf(&buf, "%05x", t)
	}
	for _, c := range fp.Codes {
		fmt.Fprintf(&buf, "%05x", c)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, _ = zw.Write(buf.Bytes())
	_ = zw.Close()

	payload := base64.StdEncoding.EncodeToString(compressed.Bytes())
	payload = strings.ReplaceAll(payload, "+", "-")
	payload = strings.ReplaceAll(payload, "/", "_")
	return payload
}

// ClampDuration returns a copy of fp holding only the codes that occur
// within maxSeconds of the first entry's time offset. The input is never
// mutated.
func ClampDuration(ctx context.Context, fp resonator.Fingerprint, maxSeconds float64) resonator.Fingerprint {
	if maxSeconds <= 0 {
		maxSeconds = MaxClampSeconds
	}

	clamped := fp
	if len(fp.Times) == 0 {
		clamped.Codes = slices.Clone(fp.Codes)
		clamped.Times = slices.Clone(fp.Times)
		return clamped
	}

	bound := maxSeconds*SecondsToTimestamp + float64(fp.Times[0])
	for i, t := range fp.Times {
		if float64(t) > bound {
			zerolog.Ctx(ctx).Debug().
				Int("codes", len(fp.Codes)).
				Int("clamped", i).
				Msg("clamping fingerprint")
			clamped.Codes = slices.Clone(fp.Codes[:i])
			clamped.Times = slices.Clone(fp.Times[:i])
			return clamped
		}
	}

	clamped.Codes = slices.Clone(fp.Codes)
	clamped.Times = slices.Clone(fp.Times)
	return clamped
}
