package storage

import (
	"context"
	"io"
	"time"
)

// Object describes an upload destined for remote object storage.
type Object struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// Service stores book cover images in remote object storage.
type Service interface {
	PutObject(ctx context.Context, obj Object) (string, error)
	DeletePrefix(ctx context.Context, bucket, prefix string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
