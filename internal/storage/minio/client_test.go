package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/trueconf-console/internal/model"
)

// fakeObjects implements objectAPI without a network.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr  error
	putKey  string
	putBody string
	putSize int64
	putOpts minioLib.PutObjectOptions

	getRC  io.ReadCloser
	getErr error

	statErr error
}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _ string, key string, reader io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	body, _ := io.ReadAll(reader)
	f.putKey, f.putBody, f.putSize, f.putOpts = key, string(body), size, opts
	return minioLib.UploadInfo{Key: key, Size: size}, f.putErr
}

func (f *fakeObjects) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeObjects) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

var errNoSuchKey = minioLib.ErrorResponse{Code: "NoSuchKey"}

func TestNewClientWithAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeObjects{bucketExists: true}
		c, err := NewClientWithAPI(ctx, api, "reports")
		require.NoError(t, err)
		assert.Equal(t, "reports", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("bucket created", func(t *testing.T) {
		api := &fakeObjects{}
		_, err := NewClientWithAPI(ctx, api, "reports")
		require.NoError(t, err)
		assert.Equal(t, "reports", api.madeBucket)
	})

	t.Run("check fails", func(t *testing.T) {
		c, err := NewClientWithAPI(ctx, &fakeObjects{bucketExistsErr: errors.New("boom")}, "reports")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check bucket existence")
	})

	t.Run("create fails", func(t *testing.T) {
		c, err := NewClientWithAPI(ctx, &fakeObjects{makeBucketErr: errors.New("denied")}, "reports")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create bucket")
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "reports"}

		require.NoError(t, c.Upload(ctx, "reports/r.txt", strings.NewReader("line one\nline two\n")))
		assert.Equal(t, "reports/r.txt", api.putKey)
		assert.Equal(t, "line one\nline two\n", api.putBody)
		assert.Equal(t, int64(len("line one\nline two\n")), api.putSize)
		assert.Equal(t, reportContentType, api.putOpts.ContentType)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{putErr: errors.New("put-fail")}, bucket: "reports"}
		err := c.Upload(ctx, "k", strings.NewReader("data"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := &Client{api: &fakeObjects{getRC: io.NopCloser(strings.NewReader("abc"))}, bucket: "reports"}
		rc, err := c.Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(body))
	})

	t.Run("missing", func(t *testing.T) {
		c := &Client{api: &fakeObjects{statErr: errNoSuchKey}, bucket: "reports"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("stat error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{statErr: errors.New("stat-fail")}, bucket: "reports"}
		_, err := c.Download(ctx, "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{getErr: errors.New("get-fail")}, bucket: "reports"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		c := &Client{api: &fakeObjects{}, bucket: "reports"}
		ok, err := c.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		c := &Client{api: &fakeObjects{statErr: errNoSuchKey}, bucket: "reports"}
		ok, err := c.Exists(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{statErr: errors.New("stat-fail")}, bucket: "reports"}
		ok, err := c.Exists(ctx, "k")
		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "failed to stat object")
	})
}
