// Package gcs archives issued certificates in a Google Cloud Storage bucket.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Archive uploads certificate PDFs to a bucket.
type Archive struct {
	client *storage.Client
	bucket string
}

// NewArchive creates a storage client for the bucket.
func NewArchive(ctx context.Context, bucket, credentialsFile string) (*Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Archive{client: client, bucket: bucket}, nil
}

// Put writes data under key, replacing any previous object.
func (a *Archive) Put(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := a.client.Bucket(a.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/pdf"
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

// Close releases the storage client.
func (a *Archive) Close() error {
	return a.client.Close()
}
