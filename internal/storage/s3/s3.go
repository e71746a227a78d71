// Package s3 is the storage.ObjectStore backed by aws-sdk-go-v2. It talks to
// AWS S3 or, with Endpoint set, any S3-compatible service (R2, OSS, MinIO).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sakif/couple-gallery/internal/storage"
)

// credentialExpiryWindow refreshes role credentials this long before they
// expire, so an upload never starts with credentials about to lapse.
const credentialExpiryWindow = 5 * time.Minute

type Config struct {
	Endpoint        string // empty = AWS
	Region          string
	Bucket          string
	AccessKeyID     string // empty = default credential chain
	SecretAccessKey string
	PathStyle       bool
	Insecure        bool // http endpoint
	PublicURL       string
}

var _ storage.ObjectStore = (*Store)(nil)

type Store struct {
	client   *awss3.Client
	uploader *manager.Uploader
	cfg      Config
}

// New builds the client. It does not contact the service.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	if cfg.Region == "" {
		return nil, errors.New("s3: region is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, errors.New("s3: access key id and secret must be set together")
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	} else {
		// Environment, shared config, then container/instance role.
		opts = append(opts, awsconfig.WithCredentialsCacheOptions(func(o *aws.CredentialsCacheOptions) {
			o.ExpiryWindow = credentialExpiryWindow
		}))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: loading AWS config: %w", err)
	}

	endpoint := cfg.endpointURL()
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		cfg:      cfg,
	}, nil
}

// Put streams body through the multipart-capable upload manager.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	input := &awss3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("s3: put %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %s: %w", key, err)
	}
	return nil
}

// URL is the public address of key.
func (s *Store) URL(key string) string {
	host := s.cfg.Endpoint
	if host == "" {
		host = fmt.Sprintf("s3.%s.amazonaws.com", s.cfg.Region)
	}
	return storage.PublicURL(s.cfg.PublicURL, host, s.cfg.Bucket, key, s.cfg.PathStyle, s.cfg.Insecure)
}

// endpointURL gives the SDK a full URL for a custom endpoint. Bare hosts get
// a scheme from Insecure.
func (c Config) endpointURL() string {
	if c.Endpoint == "" {
		return ""
	}
	if strings.Contains(c.Endpoint, "://") {
		return c.Endpoint
	}
	if c.Insecure {
		return "http://" + c.Endpoint
	}
	return "https://" + c.Endpoint
}
