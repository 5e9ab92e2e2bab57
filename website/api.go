package website

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/fingerprint"
	"github.com/vacay/resonator/ingest"

	"github.com/rs/zerolog/hlog"
)

type api struct {
	ingestor *fingerprint.Ingestor
}

// submissionRequest is the wire form of a fingerprint submission, accepted
// as a JSON body or an urlencoded form
type submissionRequest struct {
	Code     string  `json:"code"`
	Version  float64 `json:"version"`
	Duration int     `json:"duration"`
	Title    string  `json:"title"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type ingestResponse struct {
	TrackID   resonator.TrackID `json:"track_id"`
	TrackName string            `json:"track_name,omitempty"`
}

type queryResponse struct {
	Status string         `json:"status"`
	Score  int            `json:"score,omitempty"`
	Track  *trackResponse `json:"track,omitempty"`
}

type trackResponse struct {
	ID     resonator.TrackID `json:"id"`
	Name   string            `json:"name,omitempty"`
	Length int               `json:"length,omitempty"`
}

// PostIngest adds the submitted fingerprint to the database and reports the
// track it resolved to
func (a api) PostIngest(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := ingest.Submit(r.Context(), a.ingestor, sub)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		TrackID:   res.TrackID,
		TrackName: res.TrackName,
	})
}

// PostQuery runs a query-only match for the submitted fingerprint, nothing
// is written to the database
func (a api) PostQuery(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fp, err := fingerprint.Decode(r.Context(), sub.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := a.ingestor.BestMatch(r.Context(), fp)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := queryResponse{Status: res.Status.String()}
	if res.Match != nil {
		resp.Score = res.Match.AScore
	}
	if res.Track != nil {
		resp.Track = &trackResponse{
			ID:     res.Track.ID,
			Name:   res.Track.Name,
			Length: res.Track.Length,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseSubmission(r *http.Request) (ingest.Submission, error) {
	const op errors.Op = "website/parseSubmission"
	var req submissionRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return ingest.Submission{}, errors.E(op, errors.InvalidArgument, err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return ingest.Submission{}, errors.E(op, errors.InvalidArgument, err)
		}
		req.Code = r.PostFormValue("code")
		req.Title = r.PostFormValue("title")
		if v := r.PostFormValue("version"); v != "" {
			version, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return ingest.Submission{}, errors.E(op, errors.InvalidArgument, errors.Info("version"), err)
			}
			req.Version = version
		}
		if v := r.PostFormValue("duration"); v != "" {
			duration, err := strconv.Atoi(v)
			if err != nil {
				return ingest.Submission{}, errors.E(op, errors.InvalidArgument, errors.Info("duration"), err)
			}
			req.Duration = duration
		}
	}

	return ingest.Submission{
		Code:     req.Code,
		Version:  req.Version,
		Duration: req.Duration,
		Title:    req.Title,
	}, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(errors.InvalidArgument, err),
		errors.Is(errors.MissingField, err),
		errors.Is(errors.VersionMismatch, err),
		errors.Is(errors.DecodeInvalid, err),
		errors.Is(errors.DecodeInflate, err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
