// Package storage holds the registry of candidate store implementations.
package storage

import (
	"context"
	"sync"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/config"
	"github.com/vacay/resonator/errors"
	"github.com/rs/zerolog"
)

// OpenFn is a function that returns a StorageService configured with the config given
type OpenFn func(context.Context, config.Config) (resonator.StorageService, error)

var providers = map[string]OpenFn{}
var instancesMu sync.Mutex
var instances = map[string]resonator.StorageService{}

// Register registers an OpenFn under the name given, it is not safe to
// call Register from multiple goroutines
//
// Register will panic if the name already exists
func Register(name string, fn OpenFn) {
	if _, ok := providers[name]; ok {
		panic("storage already exists with name: " + name)
	}
	providers[name] = fn
}

// Open returns a resonator.StorageService as configured by the config given
func Open(ctx context.Context, cfg config.Config) (resonator.StorageService, error) {
	const op errors.Op = "storage/Open"

	name := cfg.Conf().Providers.Storage

	instancesMu.Lock()
	defer instancesMu.Unlock()
	// see if there is already an instance available
	store, ok := instances[name]
	if ok {
		zerolog.Ctx(ctx).Info().Str("provider", name).Msg("re-using existing StorageService instance")
		return store, nil
	}

	fn, ok := providers[name]
	if !ok {
		return nil, errors.E(op, errors.ProviderUnknown, errors.Info(name))
	}

	zerolog.Ctx(ctx).Info().Str("provider", name).Msg("creating new StorageService instance")
	store, err := fn(ctx, cfg)
	if err != nil {
		return nil, errors.E(op, err)
	}

	instances[name] = store
	return store, nil
}
