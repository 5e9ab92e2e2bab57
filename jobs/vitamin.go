// Package jobs holds the long-running workers that feed the fingerprint
// engine.
package jobs

import (
	"context"
	"io"
	"path/filepath"
	"time"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/codegen"
	"github.com/vacay/resonator/config"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/fingerprint"
	"github.com/vacay/resonator/ingest"
	"github.com/vacay/resonator/storage"
	"github.com/vacay/resonator/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// attemptTimeout bounds a single vitamin attempt, download and codegen
// included
const attemptTimeout = time.Minute * 2

// S3Client abstracts the object storage operations the worker needs, the
// s3.Client type satisfies this interface
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// CodegenFunc is the function used to invoke the fingerprint generator,
// it's a variable so tests can stub the subprocess out
type CodegenFunc func(ctx context.Context, binary, path string) (*codegen.Output, error)

// VitaminWorker repeatedly picks a pending vitamin, downloads its audio,
// fingerprints it and ingests the result.
type VitaminWorker struct {
	// ID identifies this worker in the logs
	ID string

	Storage  resonator.StorageService
	Ingestor *fingerprint.Ingestor
	S3       S3Client
	Codegen  CodegenFunc
	// FS is the filesystem audio files are downloaded to, the real one in
	// production
	FS afero.Fs

	Bucket      string
	Folder      string
	TmpDir      string
	CodegenPath string
	MaxDuration int
	// Interval is the wait period when no vitamin is available
	Interval time.Duration
}

// ExecuteVitaminWorker runs a vitamin worker with the configuration given
// until the context is cancelled.
func ExecuteVitaminWorker(ctx context.Context, cfg config.Config) error {
	const op errors.Op = "jobs/ExecuteVitaminWorker"

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return errors.E(op, err)
	}

	conf := cfg.Conf()
	fsys := afero.NewOsFs()

	// a previous run that died mid-attempt can leave audio files behind
	if err := util.CleanTmpFolder(ctx, fsys, conf.Ingest.TmpDir); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to clean tmp folder")
	}

	// the client is configured from the config file alone, no default
	// credential chain lookups
	awscfg := aws.Config{
		Region: conf.S3.Region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     conf.S3.Key,
				SecretAccessKey: conf.S3.Secret,
			}, nil
		}),
	}

	w := &VitaminWorker{
		ID:          xid.New().String(),
		Storage:     store,
		Ingestor:    fingerprint.NewIngestor(store),
		S3:          s3.NewFromConfig(awscfg),
		Codegen:     codegen.Run,
		FS:          fsys,
		Bucket:      conf.S3.Bucket,
		Folder:      conf.S3.Folder,
		TmpDir:      conf.Ingest.TmpDir,
		CodegenPath: conf.Ingest.CodegenPath,
		MaxDuration: conf.Ingest.MaxDuration,
		Interval:    time.Duration(conf.Ingest.WorkerInterval),
	}
	return w.Run(ctx)
}

// Run loops over pending vitamins until the context is cancelled. Transient
// errors back off exponentially, an empty queue waits the configured
// interval instead.
func (w *VitaminWorker) Run(ctx context.Context) error {
	log := zerolog.Ctx(ctx).With().Str("worker", w.ID).Logger()
	ctx = log.WithContext(ctx)

	b := config.NewWorkerBackoff(ctx)
	for {
		err := w.runOnce(ctx)
		var wait time.Duration
		switch {
		case err == nil:
			b.Reset()
			continue
		case errors.Is(errors.NoVitaminAvailable, err):
			log.Info().Msg("no vitamins available for ingesting")
			b.Reset()
			wait = w.Interval
		default:
			log.Error().Err(err).Msg("vitamin attempt failed")
			wait = b.NextBackOff()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

// runOnce handles a single vitamin end-to-end
func (w *VitaminWorker) runOnce(ctx context.Context) error {
	const op errors.Op = "jobs/VitaminWorker.runOnce"
	log := zerolog.Ctx(ctx)

	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	vitamin, err := w.Storage.Vitamin(ctx).NextPending(w.MaxDuration)
	if err != nil {
		return errors.E(op, err)
	}

	log.Info().Uint64("vitamin_id", uint64(vitamin.ID)).Msg("ingesting vitamin")

	path := filepath.Join(w.TmpDir, vitamin.ID.String()+".mp3")
	if err = w.download(ctx, vitamin.ID, path); err != nil {
		return errors.E(op, err, vitamin.ID)
	}
	// the audio file is only needed for the duration of this attempt
	defer w.FS.Remove(path)

	out, err := w.Codegen(ctx, w.CodegenPath, path)
	if err != nil {
		return errors.E(op, err, vitamin.ID)
	}

	res, err := ingest.Submit(ctx, w.Ingestor, ingest.Submission{
		Code:     out.Code,
		Version:  out.Metadata.Version,
		Duration: out.Metadata.Duration,
		Title:    out.Metadata.Title,
	})
	if err != nil {
		return errors.E(op, err, vitamin.ID)
	}

	if err = w.Storage.Vitamin(ctx).AssignTrack(vitamin.ID, res.TrackID); err != nil {
		return errors.E(op, err, vitamin.ID)
	}

	log.Info().
		Uint64("vitamin_id", uint64(vitamin.ID)).
		Uint64("track_id", uint64(res.TrackID)).
		Msg("finished ingesting")
	return nil
}

// download fetches the vitamin's audio from object storage into the file
// given
func (w *VitaminWorker) download(ctx context.Context, id resonator.VitaminID, path string) error {
	const op errors.Op = "jobs/VitaminWorker.download"

	key := w.Folder + "/vitamins/" + id.String() + ".mp3"
	out, err := w.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(w.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.E(op, err, errors.Info(key))
	}
	defer out.Body.Close()

	f, err := w.FS.Create(path)
	if err != nil {
		return errors.E(op, err)
	}

	_, err = io.Copy(f, out.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		w.FS.Remove(path)
		return errors.E(op, err)
	}
	return nil
}
