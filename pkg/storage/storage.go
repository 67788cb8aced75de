// Package storage provides the object storage client used for report files.
package storage

import (
	"context"
	"io"
)

// Object describes a stored file
type Object struct {
	URL      string
	PublicID string
}

// Service is the object storage boundary: upload on report creation, destroy
// on report deletion, fetch for analysis.
type Service interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*Object, error)
	Destroy(ctx context.Context, publicID string) error
	Fetch(ctx context.Context, url string) ([]byte, error)
}
