// Package codegen shells out to the external fingerprint generator and
// parses its output. How codes are computed from audio is entirely the
// generator's business.
package codegen

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"

	"github.com/vacay/resonator/errors"
	"github.com/rs/zerolog"
)

// Metadata is the sidecar metadata the generator reports about the input
// file
type Metadata struct {
	Artist   string  `json:"artist"`
	Title    string  `json:"title"`
	Duration int     `json:"duration"`
	Bitrate  int     `json:"bitrate"`
	Filename string  `json:"filename"`
	Version  float64 `json:"version"`
}

// Output is a single fingerprint produced by the generator
type Output struct {
	Metadata  Metadata `json:"metadata"`
	CodeCount int      `json:"code_count"`
	Code      string   `json:"code"`
}

// Run invokes the generator at binary on the audio file given and returns
// the first fingerprint it reports.
func Run(ctx context.Context, binary, path string) (*Output, error) {
	const op errors.Op = "codegen/Run"

	cmd := exec.CommandContext(ctx, binary, path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	zerolog.Ctx(ctx).Debug().
		Str("binary", binary).
		Str("path", path).
		Msg("running codegen")

	if err := cmd.Run(); err != nil {
		return nil, errors.E(op, err, errors.Info(stderr.String()))
	}

	out, err := Parse(stdout.Bytes())
	if err != nil {
		return nil, errors.E(op, err)
	}
	return out, nil
}

// Parse parses the generator's JSON output, a one-element array holding the
// fingerprint for the input file.
func Parse(data []byte) (*Output, error) {
	const op errors.Op = "codegen/Parse"

	var outputs []Output
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, errors.E(op, errors.DecodeInvalid, err)
	}

	if len(outputs) == 0 {
		return nil, errors.E(op, errors.DecodeInvalid, "codegen output was empty")
	}
	if outputs[0].Code == "" {
		return nil, errors.E(op, errors.MissingField, errors.Info("code"))
	}

	return &outputs[0], nil
}
