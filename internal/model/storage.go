package model

import (
	"context"
	"io"
)

// BlobStore is the external content store for uploaded documents.
type BlobStore interface {
	Upload(ctx context.Context, file Upload) (Blob, error)
	Delete(ctx context.Context, storageID string) error
}

// Upload is a document received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Blob references a stored document.
type Blob struct {
	ViewerURL   string
	DownloadURL string
	StorageID   string
}
