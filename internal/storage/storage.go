package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains read-only access to S3-compatible object stores,
// used to fetch dataset snapshots.

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Bucket       string
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is a read-only, S3-compatible object storage client interface.
// Methods use context and streaming readers; no local disk is used.
type Storage interface {
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns an object's info without reading its content.
	Stat(ctx context.Context, bucket, key string) (ObjectInfo, error)
}
