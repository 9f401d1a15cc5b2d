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

	"github.com/dtroode/paperdesk/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	policy    string
	policyErr error

	putKey  string
	putBody string
	putSize int64
	putOpts minioLib.PutObjectOptions
	putErr  error

	removedKey string
	removeErr  error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) SetBucketPolicy(_ context.Context, _ string, policy string) error {
	f.policy = policy
	return f.policyErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, _ := io.ReadAll(r)
	f.putKey, f.putBody, f.putSize, f.putOpts = key, string(body), size, opts
	return minioLib.UploadInfo{Key: key}, nil
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removedKey = key
	return f.removeErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(ctx, api, "b", "http://cdn/")
	require.NoError(t, err)
	assert.Equal(t, "b", c.bucket)
	assert.Equal(t, "http://cdn", c.publicURL)
	assert.False(t, api.madeBucket)
	assert.Contains(t, api.policy, "arn:aws:s3:::b/papers/*")
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}
	_, err := NewClientWithAPI(ctx, api, "bucket", "http://cdn")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		api  *fakeMinio
	}{
		{name: "bucket exists error", api: &fakeMinio{bucketExistsErr: errors.New("boom")}},
		{name: "make bucket error", api: &fakeMinio{makeBucketErr: errors.New("fail")}},
		{name: "policy error", api: &fakeMinio{bucketExists: true, policyErr: errors.New("denied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(ctx, tt.api, "bucket", "http://cdn")
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to ensure bucket exists")
		})
	}
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b", publicURL: "http://cdn"}

		blob, err := c.Upload(ctx, model.Upload{Filename: "paper.pdf", Size: 4, Content: strings.NewReader("%PDF")})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(blob.StorageID, "papers/"))
		assert.True(t, strings.HasSuffix(blob.StorageID, ".pdf"))
		assert.Equal(t, blob.StorageID, api.putKey)
		assert.Equal(t, "%PDF", api.putBody)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "application/pdf", api.putOpts.ContentType)
		assert.Equal(t, "http://cdn/b/"+blob.StorageID, blob.ViewerURL)
		assert.True(t, strings.HasPrefix(blob.DownloadURL, blob.ViewerURL+"?response-content-disposition=attachment"))
	})

	t.Run("unknown size", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b", publicURL: "http://cdn"}

		_, err := c.Upload(ctx, model.Upload{Filename: "paper.pdf", Content: strings.NewReader("x")})
		require.NoError(t, err)
		assert.Equal(t, int64(-1), api.putSize)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		c := &Client{api: api, bucket: "b"}
		_, err := c.Upload(ctx, model.Upload{Filename: "paper.pdf", Content: strings.NewReader("x")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		require.NoError(t, c.Delete(ctx, "papers/k.pdf"))
		assert.Equal(t, "papers/k.pdf", api.removedKey)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{removeErr: errors.New("remove-fail")}
		c := &Client{api: api, bucket: "b"}
		err := c.Delete(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}
