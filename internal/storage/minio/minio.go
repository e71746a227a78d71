// Package minio is the storage.ObjectStore backed by minio-go.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sakif/couple-gallery/internal/storage"
)

type Config struct {
	Endpoint        string // "host:port" or "http(s)://host:port"
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	PathStyle       bool
	PublicURL       string
}

var _ storage.ObjectStore = (*Store)(nil)

type Store struct {
	client *miniogo.Client
	bucket string
	host   string
	secure bool
	public string
}

// New builds the client. minio-go connects lazily, so this never touches the
// network.
func New(cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("minio: bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("minio: access key id and secret are required")
	}

	host, secure, err := normaliseEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("minio: endpoint: %w", err)
	}

	lookup := miniogo.BucketLookupAuto
	if cfg.PathStyle {
		lookup = miniogo.BucketLookupPath
	}

	client, err := miniogo.New(host, &miniogo.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: creating client: %w", err)
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		host:   host,
		secure: secure,
		public: cfg.PublicURL,
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size,
		miniogo.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio: put %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, miniogo.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio: delete %s: %w", key, err)
	}
	return nil
}

// URL is the public address of key. MinIO answers path-style requests
// whatever the lookup mode, so derived URLs always use that form.
func (s *Store) URL(key string) string {
	return storage.PublicURL(s.public, s.host, s.bucket, key, true, !s.secure)
}

// normaliseEndpoint accepts either "minio:9000" or "http(s)://minio:9000".
// An explicit scheme decides TLS; a bare host uses useSSL.
func normaliseEndpoint(raw string, useSSL bool) (host string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, errors.New("empty endpoint")
	}

	if !strings.Contains(raw, "://") {
		return strings.TrimRight(raw, "/"), useSSL, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, err
	}
	if u.Host == "" {
		return "", false, errors.New("invalid endpoint")
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, errors.New("endpoint must not contain a path")
	}
	return u.Host, u.Scheme == "https", nil
}
