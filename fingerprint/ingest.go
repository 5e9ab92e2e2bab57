package fingerprint

import (
	"context"
	"sync"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/rs/zerolog"
)

// Ingestor resolves incoming fingerprints to tracks, creating a track when
// no existing one matches.
//
// The whole check-then-act sequence runs under a single process-wide lock so
// two near-simultaneous submissions of the same recording can't both conclude
// "no existing match" and create duplicate tracks. The lock is process-local;
// multiple instances sharing one store can still race and need a distributed
// lock or an insert-if-absent at the store layer instead.
type Ingestor struct {
	store resonator.StorageService

	// mu serializes ingests, query-only lookups don't take it
	mu sync.Locker
}

// NewIngestor returns an Ingestor backed by the storage service given
func NewIngestor(store resonator.StorageService) *Ingestor {
	return &Ingestor{
		store: store,
		mu:    new(sync.Mutex),
	}
}

// BestMatch runs a query-only lookup for the fingerprint given, it runs
// concurrently with other lookups and with in-progress ingests.
func (in *Ingestor) BestMatch(ctx context.Context, fp resonator.Fingerprint) (*resonator.MatchResult, error) {
	return BestMatch(ctx, in.store.Track(ctx), fp)
}

// Ingest adds the fingerprint given to the database and returns the track it
// now resolves to, either an existing matching track or a freshly created
// one.
//
// An existing track that is unnamed gains the fingerprint's name if it
// carries one; a name is never overwritten once set.
func (in *Ingestor) Ingest(ctx context.Context, fp resonator.Fingerprint) (*resonator.IngestResult, error) {
	const op errors.Op = "fingerprint/Ingestor.Ingest"
	log := zerolog.Ctx(ctx)

	// fail fast before touching storage
	if len(fp.Codes) == 0 {
		return nil, errors.E(op, errors.MissingField, errors.Info("codes"))
	}
	if fp.Length < 0 {
		return nil, errors.E(op, errors.MissingField, errors.Info("length"))
	}
	if fp.CodeVersion == 0 {
		return nil, errors.E(op, errors.MissingField, errors.Info("codever"))
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	ts := in.store.Track(ctx)

	// check if this track already exists in the database
	res, err := BestMatch(ctx, ts, fp)
	if err != nil {
		return nil, errors.E(op, err)
	}

	if !res.Status.Good() {
		// track does not exist in the database yet
		log.Debug().Stringer("status", res.Status).Msg("track not in database yet")

		id, err := ts.Create(fp)
		if err != nil {
			return nil, errors.E(op, err)
		}

		log.Info().
			Uint64("track_id", uint64(id)).
			Str("track", fp.TrackName).
			Msg("created track")
		return &resonator.IngestResult{TrackID: id, TrackName: fp.TrackName}, nil
	}

	track := res.Track
	log.Info().
		Stringer("status", res.Status).
		Uint64("track_id", uint64(track.ID)).
		Str("track", track.Name).
		Msg("found existing match")

	if track.Name == "" && fp.TrackName != "" {
		// existing track is unnamed but we have a name now
		log.Debug().Str("track", fp.TrackName).Msg("updating track name")

		if err := ts.UpdateName(track.ID, fp.TrackName); err != nil {
			return nil, errors.E(op, err, track.ID)
		}
		return &resonator.IngestResult{TrackID: track.ID, TrackName: fp.TrackName}, nil
	}

	log.Debug().Msg("skipping track name update")
	return &resonator.IngestResult{TrackID: track.ID, TrackName: track.Name}, nil
}
