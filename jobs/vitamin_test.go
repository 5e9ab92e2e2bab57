package jobs

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/codegen"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/fingerprint"
	"github.com/vacay/resonator/mocks"
)

type fakeS3 struct {
	body []byte
	keys []string
	err  error
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(f.body)),
	}, nil
}

func testWorker(t *testing.T, store resonator.StorageService, client S3Client, cg CodegenFunc) *VitaminWorker {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/tmp/ingest", 0o755))

	return &VitaminWorker{
		ID:          "test-worker",
		Storage:     store,
		Ingestor:    fingerprint.NewIngestor(store),
		S3:          client,
		Codegen:     cg,
		FS:          fsys,
		Bucket:      "vacay",
		Folder:      "testing",
		TmpDir:      "/tmp/ingest",
		CodegenPath: "echoprint-codegen",
		MaxDuration: 600,
		Interval:    0,
	}
}

func testCode() string {
	fp := resonator.Fingerprint{
		Codes: make([]uint32, 20),
		Times: make([]uint32, 20),
	}
	for i := range fp.Codes {
		fp.Codes[i] = uint32(i + 1)
	}
	return fingerprint.Encode(fp)
}

func TestVitaminWorkerRunOnce(t *testing.T) {
	audio := []byte("not really an mp3")

	ts := &mocks.TrackStorageMock{
		QueryByCodesFunc: func(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
			return nil, nil
		},
		CreateFunc: func(fp resonator.Fingerprint) (resonator.TrackID, error) {
			assert.Equal(t, "qui - quo", fp.TrackName)
			return 5, nil
		},
	}
	vs := &mocks.VitaminStorageMock{
		NextPendingFunc: func(maxDuration int) (*resonator.Vitamin, error) {
			assert.Equal(t, 600, maxDuration)
			return &resonator.Vitamin{ID: 11, Duration: 180}, nil
		},
		AssignTrackFunc: func(vid resonator.VitaminID, tid resonator.TrackID) error {
			assert.Equal(t, resonator.VitaminID(11), vid)
			assert.Equal(t, resonator.TrackID(5), tid)
			return nil
		},
	}

	client := &fakeS3{body: audio}

	w := testWorker(t, mocks.VitaminStore(t, ts, vs), client, nil)

	var seen string
	w.Codegen = func(ctx context.Context, binary, path string) (*codegen.Output, error) {
		seen = path
		got, err := afero.ReadFile(w.FS, path)
		require.NoError(t, err)
		assert.Equal(t, audio, got, "codegen should see the downloaded audio")

		return &codegen.Output{
			Metadata: codegen.Metadata{
				Title:    "qui - quo",
				Duration: 180,
				Version:  4.12,
			},
			CodeCount: 20,
			Code:      testCode(),
		}, nil
	}

	require.NoError(t, w.runOnce(context.Background()))

	assert.Equal(t, []string{"testing/vitamins/11.mp3"}, client.keys)
	assert.Len(t, ts.CreateCalls(), 1)
	assert.Len(t, vs.AssignTrackCalls(), 1)

	assert.Equal(t, filepath.Join(w.TmpDir, "11.mp3"), seen)
	exists, err := afero.Exists(w.FS, seen)
	require.NoError(t, err)
	assert.False(t, exists, "audio file should be cleaned up afterwards")
}

func TestVitaminWorkerRunOnceEmpty(t *testing.T) {
	vs := &mocks.VitaminStorageMock{
		NextPendingFunc: func(maxDuration int) (*resonator.Vitamin, error) {
			return nil, errors.E(errors.NoVitaminAvailable)
		},
	}

	client := &fakeS3{}
	w := testWorker(t, mocks.VitaminStore(t, nil, vs), client, nil)
	err := w.runOnce(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(errors.NoVitaminAvailable, err),
		"kind has to survive for the loop to idle instead of backing off")
	assert.Empty(t, client.keys)
}

func TestVitaminWorkerCodegenFailureCleansUp(t *testing.T) {
	vs := &mocks.VitaminStorageMock{
		NextPendingFunc: func(maxDuration int) (*resonator.Vitamin, error) {
			return &resonator.Vitamin{ID: 11}, nil
		},
	}

	var seen string
	cg := func(ctx context.Context, binary, path string) (*codegen.Output, error) {
		seen = path
		return nil, errors.E(errors.Testing)
	}

	w := testWorker(t, mocks.VitaminStore(t, nil, vs), &fakeS3{body: []byte("x")}, cg)
	err := w.runOnce(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Testing, err))

	exists, serr := afero.Exists(w.FS, seen)
	require.NoError(t, serr)
	assert.False(t, exists, "audio file should be cleaned up on failure too")
}

func TestVitaminWorkerDownloadFailure(t *testing.T) {
	vs := &mocks.VitaminStorageMock{
		NextPendingFunc: func(maxDuration int) (*resonator.Vitamin, error) {
			return &resonator.Vitamin{ID: 11}, nil
		},
	}

	w := testWorker(t, mocks.VitaminStore(t, nil, vs), &fakeS3{err: errors.E(errors.Testing)}, nil)
	err := w.runOnce(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Testing, err))

	entries, rerr := afero.ReadDir(w.FS, w.TmpDir)
	require.NoError(t, rerr)
	assert.Empty(t, entries, "no stray files on download failure")
}
