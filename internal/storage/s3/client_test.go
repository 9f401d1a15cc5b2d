package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/paperdesk/internal/model"
)

type fakeS3 struct {
	put       *s3.PutObjectInput
	putBody   string
	putErr    error
	deleted   *s3.DeleteObjectInput
	deleteErr error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	body, _ := io.ReadAll(in.Body)
	f.putBody = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = in
	return &s3.DeleteObjectOutput{}, f.deleteErr
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeS3{}
		c := NewClientWithAPI(api, "papers-bucket", "https://cdn.conf.org/")

		blob, err := c.Upload(ctx, model.Upload{Filename: "paper.pdf", Size: 4, Content: strings.NewReader("%PDF")})
		require.NoError(t, err)

		require.NotNil(t, api.put)
		assert.Equal(t, "papers-bucket", aws.ToString(api.put.Bucket))
		assert.Equal(t, blob.StorageID, aws.ToString(api.put.Key))
		assert.Equal(t, "application/pdf", aws.ToString(api.put.ContentType))
		assert.Equal(t, int64(4), aws.ToInt64(api.put.ContentLength))
		assert.Equal(t, "%PDF", api.putBody)
		assert.Equal(t, "https://cdn.conf.org/"+blob.StorageID, blob.ViewerURL)
		assert.True(t, strings.HasPrefix(blob.DownloadURL, blob.ViewerURL+"?"))
	})

	t.Run("error", func(t *testing.T) {
		c := NewClientWithAPI(&fakeS3{putErr: errors.New("throttled")}, "b", "https://cdn")

		_, err := c.Upload(ctx, model.Upload{Filename: "paper.pdf", Content: strings.NewReader("x")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	api := &fakeS3{}
	c := NewClientWithAPI(api, "b", "https://cdn")
	require.NoError(t, c.Delete(ctx, "papers/k.pdf"))
	assert.Equal(t, "papers/k.pdf", aws.ToString(api.deleted.Key))
	assert.Equal(t, "b", aws.ToString(api.deleted.Bucket))

	api.deleteErr = errors.New("denied")
	err := c.Delete(ctx, "papers/k.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete object")
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn", publicURL(Options{PublicURL: "https://cdn", Endpoint: "http://minio:9000"}))
	assert.Equal(t, "http://minio:9000/b", publicURL(Options{Endpoint: "http://minio:9000/", Bucket: "b"}))
	assert.Equal(t, "https://b.s3.eu-central-1.amazonaws.com", publicURL(Options{Bucket: "b", Region: "eu-central-1"}))
}

func TestNew_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	c, err := New(context.Background(), Options{Region: "us-east-1", Bucket: "b"})
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load aws config")
}

func TestNew_StaticCredentials(t *testing.T) {
	c, err := New(context.Background(), Options{
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/b", c.publicURL)
}
