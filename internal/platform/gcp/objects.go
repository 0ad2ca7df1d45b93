package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type ObjectStorageMode string

const (
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"

	objectURIScheme = "gs://"
)

var ErrInvalidObjectURI = errors.New("invalid object uri")

type ObjectStorageConfig struct {
	Mode         ObjectStorageMode
	EmulatorHost string
}

// ResolveObjectStorageConfigFromEnv reads OBJECT_STORAGE_MODE and
// STORAGE_EMULATOR_HOST. An emulator host without an explicit mode selects
// the emulator.
func ResolveObjectStorageConfigFromEnv() (ObjectStorageConfig, error) {
	cfg := ObjectStorageConfig{
		EmulatorHost: strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/"),
	}
	raw := strings.TrimSpace(os.Getenv("OBJECT_STORAGE_MODE"))
	switch ObjectStorageMode(strings.ToLower(raw)) {
	case "":
		cfg.Mode = ObjectStorageModeGCS
		if cfg.EmulatorHost != "" {
			cfg.Mode = ObjectStorageModeGCSEmulator
		}
	case ObjectStorageModeGCS:
		cfg.Mode = ObjectStorageModeGCS
	case ObjectStorageModeGCSEmulator:
		cfg.Mode = ObjectStorageModeGCSEmulator
	default:
		return cfg, fmt.Errorf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q)", raw, ObjectStorageModeGCS, ObjectStorageModeGCSEmulator)
	}
	if cfg.Mode == ObjectStorageModeGCSEmulator {
		u, err := url.Parse(cfg.EmulatorHost)
		if cfg.EmulatorHost == "" || err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, fmt.Errorf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST as an absolute URL, got %q", cfg.Mode, cfg.EmulatorHost)
		}
	}
	return cfg, nil
}

// IsObjectURI reports whether s names a gs://bucket/object location.
func IsObjectURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), objectURIScheme)
}

// ParseObjectURI splits gs://bucket/path/to/object.
func ParseObjectURI(s string) (bucket, key string, err error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, objectURIScheme) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidObjectURI, s)
	}
	rest := strings.TrimPrefix(s, objectURIScheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidObjectURI, s)
	}
	return bucket, key, nil
}

// ObjectReader opens Cloud Storage objects for reading.
type ObjectReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
	Close() error
}

type objectReader struct {
	log    *logger.Logger
	client *storage.Client
}

func NewObjectReader(ctx context.Context, log *logger.Logger) (ObjectReader, error) {
	cfg, err := ResolveObjectStorageConfigFromEnv()
	if err != nil {
		return nil, err
	}
	var opts []option.ClientOption
	switch cfg.Mode {
	case ObjectStorageModeGCSEmulator:
		// the storage client honours STORAGE_EMULATOR_HOST itself
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		opts = append(opts, option.WithoutAuthentication())
	default:
		opts = append(ClientOptionsFromEnv(), option.WithScopes(storage.ScopeReadOnly))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog := log.With("service", "ObjectReader")
	serviceLog.Info("Object storage initialized", "mode", cfg.Mode, "emulator_host", cfg.EmulatorHost)
	return &objectReader{log: serviceLog, client: client}, nil
}

func (r *objectReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseObjectURI(uri)
	if err != nil {
		return nil, err
	}
	rc, err := r.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", bucket, key, err)
	}
	r.log.Debug("Opened object", "bucket", bucket, "key", key, "size", rc.Attrs.Size)
	return rc, nil
}

func (r *objectReader) Close() error {
	return r.client.Close()
}
