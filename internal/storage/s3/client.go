// Package s3 stores paper documents in AWS S3 or an S3-compatible service.
package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dtroode/paperdesk/internal/model"
	"github.com/dtroode/paperdesk/internal/storage"
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ s3API = (*s3.Client)(nil)

var _ model.BlobStore = (*Client)(nil)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// Options configures the S3 connection.
type Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the base URL objects are served from. Defaults to the
	// bucket's virtual-hosted AWS URL.
	PublicURL string
}

type Client struct {
	api       s3API
	bucket    string
	publicURL string
}

// New builds an S3 client. Static credentials are used when given, otherwise
// the default AWS credential chain applies. A custom endpoint switches to
// path-style addressing.
func New(ctx context.Context, opts Options) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewClientWithAPI(client, opts.Bucket, publicURL(opts)), nil
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(api s3API, bucket, publicURL string) *Client {
	return &Client{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (c *Client) Upload(ctx context.Context, file model.Upload) (model.Blob, error) {
	key := storage.ObjectKey()
	contentType := file.ContentType
	if contentType == "" {
		contentType = storage.DefaultContentType
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file.Content,
		ContentType: aws.String(contentType),
	}
	if file.Size > 0 {
		in.ContentLength = aws.Int64(file.Size)
	}

	if _, err := c.api.PutObject(ctx, in); err != nil {
		return model.Blob{}, fmt.Errorf("failed to upload object: %w", err)
	}

	viewer := c.publicURL + "/" + key
	return model.Blob{
		ViewerURL:   viewer,
		DownloadURL: storage.DownloadURL(viewer, file.Filename),
		StorageID:   key,
	}, nil
}

func (c *Client) Delete(ctx context.Context, storageID string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func publicURL(opts Options) string {
	switch {
	case opts.PublicURL != "":
		return opts.PublicURL
	case opts.Endpoint != "":
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
}
