package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubObjectAPI struct {
	existsErrs []error
	exists     bool
	puts       int
}

func (s *stubObjectAPI) BucketExists(context.Context, string) (bool, error) {
	if len(s.existsErrs) > 0 {
		err := s.existsErrs[0]
		s.existsErrs = s.existsErrs[1:]
		if err != nil {
			return false, err
		}
	}
	return s.exists, nil
}

func (s *stubObjectAPI) MakeBucket(context.Context, string, minio.MakeBucketOptions) error {
	s.exists = true
	return nil
}

func (s *stubObjectAPI) PutObject(_ context.Context, _, _ string, _ io.Reader, size int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	s.puts++
	return minio.UploadInfo{Size: size}, nil
}

func TestUploadRetriesBucketCheckAfterFailure(t *testing.T) {
	api := &stubObjectAPI{existsErrs: []error{errors.New("connection refused")}}
	client := &Client{bucket: "exports", client: api}
	ctx := context.Background()

	err := client.Upload(ctx, "reservations/a.csv", []byte("x"), "text/csv")
	require.Error(t, err)
	assert.Zero(t, api.puts)

	// The first failure must not stick; the next upload re-checks and works.
	err = client.Upload(ctx, "reservations/a.csv", []byte("x"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, 1, api.puts)
}

func TestUploadProvisionsMissingBucketOnce(t *testing.T) {
	api := &stubObjectAPI{}
	client := &Client{bucket: "exports", client: api}
	ctx := context.Background()

	require.NoError(t, client.Upload(ctx, "a", []byte("x"), ""))
	require.NoError(t, client.Upload(ctx, "b", []byte("y"), ""))
	assert.Equal(t, 2, api.puts)
}

func TestUploadRejectsEmptyKey(t *testing.T) {
	client := &Client{bucket: "exports", client: &stubObjectAPI{exists: true}}
	assert.Error(t, client.Upload(context.Background(), "  / ", nil, ""))
}
