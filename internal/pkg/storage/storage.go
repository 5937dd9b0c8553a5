package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files (avatar images) and serves them back
// by public URL
type Storage interface {
	// Upload stores the file under key and returns its public URL
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Delete removes the file. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error

	// Type returns the backend type
	Type() string
}

// Type of storage backend
type Type string

const (
	TypeLocal Type = "local" // local filesystem
	TypeOSS   Type = "oss"   // Aliyun OSS
)
