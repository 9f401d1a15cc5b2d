// Package storage holds helpers shared by the blob store backends.
package storage

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// DefaultContentType is used when an upload does not declare one.
const DefaultContentType = "application/pdf"

// ObjectKey returns a fresh key for a paper document.
func ObjectKey() string {
	return "papers/" + uuid.NewString() + ".pdf"
}

// DownloadURL turns a viewer URL into one that makes browsers save the file.
func DownloadURL(viewerURL, filename string) string {
	disposition := "attachment"
	if filename != "" {
		disposition += fmt.Sprintf("; filename=%q", filename)
	}
	return viewerURL + "?response-content-disposition=" + url.QueryEscape(disposition)
}
