package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	a, b := ObjectKey(), ObjectKey()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "papers/"))
	assert.True(t, strings.HasSuffix(a, ".pdf"))
}

func TestDownloadURL(t *testing.T) {
	assert.Equal(t,
		"http://cdn/b/k.pdf?response-content-disposition=attachment%3B+filename%3D%22paper.pdf%22",
		DownloadURL("http://cdn/b/k.pdf", "paper.pdf"))
	assert.Equal(t, "http://cdn/b/k.pdf?response-content-disposition=attachment", DownloadURL("http://cdn/b/k.pdf", ""))
}
