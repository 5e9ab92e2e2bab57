// Package ingest is the submission boundary of the fingerprint engine,
// validating raw submissions before handing them to the matching core.
package ingest

import (
	"context"
	"time"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/fingerprint"
	"github.com/rs/zerolog"
)

// CodeVersion is the only fingerprint generator version we accept
// submissions from, the wire format and code semantics are tied to it
const CodeVersion = 4.12

// Submission is a raw transport-encoded fingerprint plus its sidecar
// metadata
type Submission struct {
	// Code is the transport-encoded fingerprint payload
	Code string
	// Version is the fingerprint generator version that produced Code
	Version float64
	// Duration is the track duration in seconds
	Duration int
	// Title is the track title, if known
	Title string
}

// Submit validates the submission given, decodes its payload and resolves it
// to a track through the Ingestor given.
func Submit(ctx context.Context, in *fingerprint.Ingestor, sub Submission) (*resonator.IngestResult, error) {
	const op errors.Op = "ingest/Submit"
	start := time.Now()

	if sub.Code == "" {
		return nil, errors.E(op, errors.MissingField, errors.Info("code"))
	}
	if sub.Version == 0 {
		return nil, errors.E(op, errors.MissingField, errors.Info("version"))
	}
	if sub.Version != CodeVersion {
		return nil, errors.E(op, errors.VersionMismatch, errors.Info("version"))
	}
	if sub.Duration <= 0 {
		return nil, errors.E(op, errors.MissingField, errors.Info("length"))
	}

	fp, err := fingerprint.Decode(ctx, sub.Code)
	if err != nil {
		return nil, errors.E(op, err)
	}
	if len(fp.Codes) == 0 {
		return nil, errors.E(op, errors.DecodeInvalid, errors.Info("code"))
	}

	fp.CodeVersion = sub.Version
	fp.Length = sub.Duration
	fp.TrackName = sub.Title

	res, err := in.Ingest(ctx, fp)
	if err != nil {
		return nil, errors.E(op, err)
	}

	zerolog.Ctx(ctx).Debug().
		Dur("duration", time.Since(start)).
		Uint64("track_id", uint64(res.TrackID)).
		Msg("ingest completed")
	return res, nil
}
