// Package util holds small helpers shared between the services.
package util

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/vacay/resonator/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Signal returns a channel that receives the signals given, like
// signal.Notify but without having to make the channel yourself
func Signal(sig ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	return ch
}

// CleanTmpFolder removes stray files left behind in the scratch directory by
// a previous run that died mid-ingest. Dotfiles and subdirectories are left
// alone.
func CleanTmpFolder(ctx context.Context, fsys afero.Fs, dir string) error {
	const op errors.Op = "util/CleanTmpFolder"
	log := zerolog.Ctx(ctx)

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return errors.E(op, err, errors.Info(dir))
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := fsys.Remove(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to remove stray file")
			continue
		}
		log.Info().Str("path", path).Msg("removed stray file")
	}
	return nil
}
