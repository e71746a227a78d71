package main

import (
	"context"
	"fmt"

	"github.com/sakif/couple-gallery/internal/config"
	"github.com/sakif/couple-gallery/internal/storage"
	"github.com/sakif/couple-gallery/internal/storage/minio"
	"github.com/sakif/couple-gallery/internal/storage/s3"
)

// newObjectStore builds the driver named by cfg.Driver. It returns a nil
// interface (not a typed nil) when storage is disabled, so the uploader can
// tell the difference.
func newObjectStore(ctx context.Context, cfg config.Storage) (storage.ObjectStore, error) {
	switch cfg.Driver {
	case "":
		return nil, nil

	case config.DriverS3:
		store, err := s3.New(ctx, s3.Config{
			Endpoint:        cfg.Endpoint,
			Region:          cfg.Region,
			Bucket:          cfg.Bucket,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			PathStyle:       cfg.PathStyle,
			Insecure:        !cfg.UseSSL,
			PublicURL:       cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverMinio:
		store, err := minio.New(minio.Config{
			Endpoint:        cfg.Endpoint,
			Region:          cfg.Region,
			Bucket:          cfg.Bucket,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			UseSSL:          cfg.UseSSL,
			PathStyle:       cfg.PathStyle,
			PublicURL:       cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
