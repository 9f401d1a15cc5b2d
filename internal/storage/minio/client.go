package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/paperdesk/internal/model"
	"github.com/dtroode/paperdesk/internal/storage"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ minioAPI = (*minio.Client)(nil)

var _ model.BlobStore = (*Client)(nil)

// Options configures the MinIO connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base URL readers reach the bucket at.
	PublicURL string
}

// Client stores paper documents in a MinIO bucket with public read access.
type Client struct {
	api       minioAPI
	bucket    string
	publicURL string
}

// New connects to MinIO and prepares the bucket.
func New(ctx context.Context, opts Options) (*Client, error) {
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewClientWithAPI(ctx, mc, opts.Bucket, opts.PublicURL)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, publicURL string) (*Client, error) {
	c := &Client{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}

	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket if it doesn't exist and opens it
// for anonymous reads, so viewer and download URLs work without signing.
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if err := c.api.SetBucketPolicy(ctx, c.bucket, readOnlyPolicy(c.bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// Upload stores the document under a fresh key.
func (c *Client) Upload(ctx context.Context, file model.Upload) (model.Blob, error) {
	key := storage.ObjectKey()
	contentType := file.ContentType
	if contentType == "" {
		contentType = storage.DefaultContentType
	}

	size := file.Size
	if size <= 0 {
		size = -1
	}

	_, err := c.api.PutObject(ctx, c.bucket, key, file.Content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return model.Blob{}, fmt.Errorf("failed to upload object: %w", err)
	}

	viewer := fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key)
	return model.Blob{
		ViewerURL:   viewer,
		DownloadURL: storage.DownloadURL(viewer, file.Filename),
		StorageID:   key,
	}, nil
}

// Delete removes the object stored under storageID.
func (c *Client) Delete(ctx context.Context, storageID string) error {
	err := c.api.RemoveObject(ctx, c.bucket, storageID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func readOnlyPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/papers/*"]}]}`, bucket)
}
