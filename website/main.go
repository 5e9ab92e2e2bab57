// Package website is the HTTP front of the fingerprint engine, a thin JSON
// layer over the ingest and matching cores.
package website

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/vacay/resonator/config"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/fingerprint"
	"github.com/vacay/resonator/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Execute runs the API server with the configuration given until the context
// is cancelled.
func Execute(ctx context.Context, cfg config.Config) error {
	const op errors.Op = "website/Execute"

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return errors.E(op, err)
	}

	log := zerolog.Ctx(ctx)
	r := Router(*log, fingerprint.NewIngestor(store))

	conf := cfg.Conf()
	server := &http.Server{
		Addr:        conf.Website.ListenAddr,
		Handler:     r,
		ReadTimeout: time.Minute,
	}

	log.Info().Str("address", server.Addr).Msg("website listening")
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return errors.E(op, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		return server.Close()
	case err = <-errCh:
		return err
	}
}

// Router constructs the http routes of the API
func Router(log zerolog.Logger, in *fingerprint.Ingestor) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", status).
			Dur("duration", duration).
			Msg("http request")
	}))
	r.Use(middleware.Recoverer)

	api := api{ingestor: in}
	r.Post("/ingest", api.PostIngest)
	r.Post("/query", api.PostQuery)
	r.Get("/health_check", HealthCheck)
	r.NotFound(NotFound)
	return r
}

// HealthCheck is the load balancer probe endpoint
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// NotFound answers anything outside the API surface
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Message: "invalid endpoint: " + r.URL.Path,
	})
}
