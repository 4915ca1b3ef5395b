// Package blob streams hero images out of object storage so that
// link-preview fetchers always receive the bytes from an absolute URL
// under this service's own host.
package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/duitai/purview/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store wraps a MinIO client for read-only image access.
type Store struct {
	client   *minio.Client
	endpoint string
}

// New connects to the configured object storage endpoint.
func New(cfg config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object storage: %w", err)
	}
	return &Store{client: client, endpoint: cfg.Endpoint}, nil
}

// ParseObjectURL splits a blob URL like
// https://host/bucket/lenders/acme/hero.jpg into bucket and object key.
func ParseObjectURL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parsing blob URL: %w", err)
	}
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("blob URL %q has no bucket/object path", rawURL)
	}
	bucket, err = url.PathUnescape(parts[0])
	if err != nil {
		return "", "", err
	}
	key, err = url.PathUnescape(parts[1])
	if err != nil {
		return "", "", err
	}
	return bucket, key, nil
}

// Holds reports whether the URL points at this store's endpoint.
func (s *Store) Holds(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, s.endpoint)
}

// Fetch opens the object behind a blob URL. The returned reader must be
// closed by the caller.
func (s *Store) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	bucket, key, err := ParseObjectURL(rawURL)
	if err != nil {
		return nil, "", err
	}

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s/%s: %w", bucket, key, err)
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, "", fmt.Errorf("stat %s/%s: %w", bucket, key, err)
	}

	ct := info.ContentType
	if ct == "" || ct == "application/octet-stream" {
		if guessed := ContentTypeFor(key); guessed != "" {
			ct = guessed
		}
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	return obj, ct, nil
}

// ContentTypeFor guesses a MIME type from the object key's extension.
func ContentTypeFor(key string) string {
	return mime.TypeByExtension(path.Ext(key))
}
