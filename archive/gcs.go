package archive

import (
	"context"
	"errors"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// Bucket is a Sink writing objects below Prefix in a Cloud Storage bucket.
type Bucket struct {
	Prefix string

	client *storage.Client
	bucket *storage.BucketHandle
}

// NewBucket connects with the default application credentials.
func NewBucket(ctx context.Context, name, prefix string) (*Bucket, error) {
	if name == "" {
		return nil, errors.New("archive: empty bucket name")
	}
	gcpClient, err := google.DefaultClient(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("GCP default client: %w", err)
	}
	client, err := storage.NewClient(ctx, option.WithHTTPClient(gcpClient))
	if err != nil {
		return nil, fmt.Errorf("GCP storage client: %w", err)
	}
	return &Bucket{
		Prefix: prefix,
		client: client,
		bucket: client.Bucket(name),
	}, nil
}

func (b *Bucket) Put(ctx context.Context, name string, data []byte) error {
	w := b.bucket.Object(path.Join(b.Prefix, name)).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func (b *Bucket) Close() error {
	return b.client.Close()
}
