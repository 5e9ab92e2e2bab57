package resonator

import (
	"context"
	"strconv"
	"time"

	"github.com/elliotchance/orderedmap/v3"
)

// TrackID is an identifier corresponding to a fingerprinted track
type TrackID uint64

func ParseTrackID(s string) (TrackID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TrackID(id), nil
}

func (id TrackID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// VitaminID is an identifier corresponding to an audio item awaiting
// fingerprinting in the surrounding job pipeline
type VitaminID uint64

func ParseVitaminID(s string) (VitaminID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return VitaminID(id), nil
}

func (id VitaminID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Fingerprint is a decoded acoustic fingerprint, an ordered sequence of
// (code, time offset) pairs plus any metadata we know about the recording
// it was generated from.
//
// Codes and Times are parallel, len(Codes) == len(Times) always holds for
// a fingerprint returned by the codec.
type Fingerprint struct {
	// Codes are quantized acoustic feature hashes from the fingerprint
	// generator, 20-bit values
	Codes []uint32
	// Times are the positions, in fingerprinter ticks, at which the
	// matching entry of Codes occurs
	Times []uint32

	// Length is the duration of the source recording in seconds
	Length int
	// CodeVersion is the version of the fingerprint generator that
	// produced the codes
	CodeVersion float64
	// TrackName is the name of the recording, if known
	TrackName string
}

// Track is a fingerprinted track as stored
type Track struct {
	ID TrackID
	// Name is empty for tracks that were ingested anonymously, it is
	// filled in by the first ingest that carries a name
	Name        string
	Length      int
	CodeVersion float64
	ImportDate  time.Time
}

// Histogram counts how often a code matched at a given absolute time-offset
// delta, keyed by delta in first-encounter order.
type Histogram = orderedmap.OrderedMap[uint32, int]

// CandidateMatch is a single candidate track returned by a code overlap
// query, carrying the overlapping rows needed for refined scoring. It only
// lives for the duration of a single query and is never stored.
type CandidateMatch struct {
	TrackID TrackID
	// Codes and Times are the candidate's stored rows restricted to codes
	// that also occur in the query fingerprint
	Codes []uint32
	Times []uint32
	// Score is the coarse score, the raw count of overlapping codes as
	// reported by storage
	Score int
	// AScore is the refined time-aligned score, filled in by the scorer
	AScore int
	// Histogram is the time-offset delta distribution the refined score
	// was derived from
	Histogram *Histogram
}

// MatchStatus is the outcome classification of a fingerprint lookup
type MatchStatus uint8

// Do not reorder this list or remove items;
// New items must be added only to the end
const (
	// NoResults means the code overlap query returned no candidates
	NoResults MatchStatus = iota
	// NoResultsHistogramDecreased means all candidates were dropped by
	// refined scoring
	NoResultsHistogramDecreased
	// SingleGoodMatch means a single candidate survived refinement and
	// scored above the match threshold
	SingleGoodMatch
	// SingleBadMatch means a single candidate survived refinement but
	// scored below the match threshold
	SingleBadMatch
	// MultipleGoodMatch means multiple candidates survived refinement and
	// the best one won by a clear margin
	MultipleGoodMatch
	// MultipleBadHistogramMatch means the candidates that matched did not
	// hold up under time-aligned scoring
	MultipleBadHistogramMatch
)

func (s MatchStatus) String() string {
	switch s {
	case NoResults:
		return "NO_RESULTS"
	case NoResultsHistogramDecreased:
		return "NO_RESULTS_HISTOGRAM_DECREASED"
	case SingleGoodMatch:
		return "SINGLE_GOOD_MATCH_HISTOGRAM_DECREASED"
	case SingleBadMatch:
		return "SINGLE_BAD_MATCH"
	case MultipleGoodMatch:
		return "MULTIPLE_GOOD_MATCH_HISTOGRAM_DECREASED"
	case MultipleBadHistogramMatch:
		return "MULTIPLE_BAD_HISTOGRAM_MATCH"
	}
	return "UNKNOWN"
}

// Good indicates if this status carries a winning match
func (s MatchStatus) Good() bool {
	return s == SingleGoodMatch || s == MultipleGoodMatch
}

// MatchResult is the outcome of a fingerprint lookup, Match and Track are
// only set when Status.Good() returns true.
type MatchResult struct {
	Status MatchStatus
	Match  *CandidateMatch
	Track  *Track
}

// IngestResult is the outcome of a fingerprint ingest, identifying the track
// the fingerprint now resolves to.
type IngestResult struct {
	TrackID   TrackID
	TrackName string
}

// Vitamin is an externally-supplied audio item awaiting fingerprinting
type Vitamin struct {
	ID       VitaminID
	Duration int
	// ProcessedAt is the time the item finished upload processing, nil
	// means it is not ready for fingerprinting yet
	ProcessedAt *time.Time
	// FingerprintID is the track the item resolved to, nil while pending
	FingerprintID *TrackID
}

// StorageTx is the interface for transactions used by the StorageService
// interface
type StorageTx interface {
	Commit() error
	Rollback() error
}

// StorageService is an interface containing all *StorageService interfaces
type StorageService interface {
	TrackStorageService
	VitaminStorageService
	// Close closes the storage service and cleans up any resources
	Close() error
}

type TrackStorageService interface {
	Track(context.Context) TrackStorage
	TrackTx(context.Context, StorageTx) (TrackStorage, StorageTx, error)
}

type VitaminStorageService interface {
	Vitamin(context.Context) VitaminStorage
	VitaminTx(context.Context, StorageTx) (VitaminStorage, StorageTx, error)
}

type TrackStorage interface {
	// QueryByCodes returns up to limit candidate tracks ranked by raw code
	// overlap count, each populated with its overlapping (code, time) rows
	QueryByCodes(codes []uint32, limit int) ([]CandidateMatch, error)
	// Get returns a single track with the TrackID given
	Get(TrackID) (*Track, error)
	// Create inserts a new track with the fingerprint's metadata and all of
	// its code rows as a single unit
	Create(fp Fingerprint) (TrackID, error)
	// UpdateName sets the name of the track given
	UpdateName(TrackID, string) error
	// Delete removes a track and its code rows from storage
	Delete(TrackID) error
}

type VitaminStorage interface {
	// NextPending returns a random vitamin that has finished processing,
	// has no fingerprint yet and is shorter than maxDuration seconds
	NextPending(maxDuration int) (*Vitamin, error)
	// AssignTrack records the track a vitamin resolved to
	AssignTrack(VitaminID, TrackID) error
}
