// Package storage puts uploaded images into S3-compatible object storage.
//
// The package is split in two levels:
//
//	Uploader        → naming rules (folder, unique key, extension), URL shape
//	ObjectStore     → "put these bytes under this key" for one backend
//	  ├─ storage/s3     (aws-sdk-go-v2; AWS, or any S3 endpoint)
//	  └─ storage/minio  (minio-go)
//
// Handlers and services only ever see the Uploader, so tests swap in a fake
// ObjectStore and never touch the network.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/couple-gallery/internal/apperror"
)

// DefaultFolder is used when an upload does not name a folder.
const DefaultFolder = "photos"

const defaultExt = "jpg"

// ErrNotConfigured is returned when no storage driver was set up.
var ErrNotConfigured = errors.New("storage: object storage is not configured")

// ObjectStore is one storage backend.
type ObjectStore interface {
	// Put stores body under key and returns the object's public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Object describes a stored upload. Path is the object key, which is also
// what Delete expects.
type Object struct {
	URL  string `json:"url"`
	Path string `json:"name"`
}

// Uploader names uploads and hands them to an ObjectStore.
// A nil store makes every call fail with ErrNotConfigured.
type Uploader struct {
	store ObjectStore
	now   func() time.Time
	newID func() string
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{
		store: store,
		now:   time.Now,
		newID: func() string { return xid.New().String() },
	}
}

// Configured reports whether a backend is attached.
func (u *Uploader) Configured() bool {
	return u != nil && u.store != nil
}

// Upload stores body as "{folder}/{unixMillis}_{id}.{ext}".
func (u *Uploader) Upload(ctx context.Context, body io.Reader, size int64, contentType, filename, folder string) (*Object, error) {
	if !u.Configured() {
		return nil, ErrNotConfigured
	}

	key := ObjectKey(folder, filename, u.now(), u.newID())
	url, err := u.store.Put(ctx, key, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("storage: uploading %s: %w", key, err)
	}
	return &Object{URL: url, Path: key}, nil
}

// Delete removes a previously uploaded object by its path.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	if !u.Configured() {
		return ErrNotConfigured
	}
	key = NormaliseKey(key)
	if key == "" {
		return apperror.MissingFields("name")
	}
	if err := u.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("storage: deleting %s: %w", key, err)
	}
	return nil
}

// NormaliseKey trims spaces and leading slashes from a client-supplied
// object path. An empty result means there is nothing to delete.
func NormaliseKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}

// ObjectKey builds a collision-resistant key for an upload.
func ObjectKey(folder, filename string, at time.Time, id string) string {
	return fmt.Sprintf("%s/%d_%s.%s", SanitizeFolder(folder), at.UnixMilli(), id, extension(filename))
}

// SanitizeFolder turns a client-supplied folder into a safe key prefix:
// no leading slash, no "." or ".." segments, no empty segments.
func SanitizeFolder(folder string) string {
	folder = strings.ReplaceAll(folder, "\\", "/")

	var parts []string
	for _, p := range strings.Split(folder, "/") {
		p = strings.TrimSpace(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return DefaultFolder
	}
	return strings.Join(parts, "/")
}

// extension returns the lowercased extension of filename, or "jpg" when it
// has none or it contains anything but letters and digits.
func extension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return defaultExt
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultExt
		}
	}
	return ext
}

// PublicURL returns the URL under which key is served.
//
// With base set the result is "{base}/{key}", always over https. Otherwise
// it is derived from the endpoint: "{endpoint}/{bucket}/{key}" for
// path-style addressing or "{bucket}.{endpoint}/{key}" for virtual-hosted
// style, over http only when insecure is set.
func PublicURL(base, endpoint, bucket, key string, pathStyle, insecure bool) string {
	key = strings.TrimLeft(key, "/")

	switch {
	case base != "":
		return "https://" + stripScheme(base) + "/" + key
	case insecure:
		return "http://" + derivedHost(endpoint, bucket, pathStyle) + key
	default:
		return "https://" + derivedHost(endpoint, bucket, pathStyle) + key
	}
}

func derivedHost(endpoint, bucket string, pathStyle bool) string {
	if pathStyle {
		return stripScheme(endpoint) + "/" + bucket + "/"
	}
	return bucket + "." + stripScheme(endpoint) + "/"
}

func stripScheme(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	return strings.TrimRight(u, "/")
}
