package model

import (
	"context"
	"io"
)

// Storage is a binary object store with signed retrieval URLs.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string) (string, error)
}
