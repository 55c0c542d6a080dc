package invoice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Archiver stores rendered invoices.
type Archiver interface {
	// Archive writes body under key, overwriting any previous copy.
	Archive(ctx context.Context, key string, body []byte) error
}

// objectPutter is the subset of the S3 client used for archiving.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Archiver implements Archiver on an S3 bucket.
type s3Archiver struct {
	client objectPutter
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Archiver creates an S3-backed invoice archiver using the default AWS credential chain.
func NewS3Archiver(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Archiver, error) {
	logger = logger.With().Str("component", "s3-invoice-archive").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 invoice archive initialised")

	return newS3Archiver(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

func newS3Archiver(client objectPutter, bucket, prefix string, logger zerolog.Logger) *s3Archiver {
	return &s3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Archive uploads body to bucket/prefix+key.
func (a *s3Archiver) Archive(ctx context.Context, key string, body []byte) error {
	fullKey := a.prefix + key

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("bucket", a.bucket).
			Str("key", fullKey).
			Msg("failed to put invoice to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", a.bucket, fullKey, err)
	}

	a.logger.Debug().Str("key", fullKey).Msg("invoice archived to S3")
	return nil
}

// fileArchiver implements Archiver on the local file system.
type fileArchiver struct {
	dir    string
	logger zerolog.Logger
}

// NewFileArchiver creates an archiver that writes invoices below dir.
func NewFileArchiver(dir string, logger zerolog.Logger) Archiver {
	return &fileArchiver{
		dir:    dir,
		logger: logger.With().Str("component", "file-invoice-archive").Logger(),
	}
}

// Archive writes body to dir/key, creating parent directories.
func (a *fileArchiver) Archive(ctx context.Context, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(a.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		a.logger.Error().Err(err).Str("path", path).Msg("failed to create invoice directory")
		return fmt.Errorf("failed to create invoice directory: %w", err)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		a.logger.Error().Err(err).Str("path", path).Msg("failed to write invoice")
		return fmt.Errorf("failed to write invoice %s: %w", path, err)
	}

	a.logger.Debug().Str("path", path).Msg("invoice archived to disk")
	return nil
}

// fallbackArchiver tries the primary archiver first, then the local one.
type fallbackArchiver struct {
	primary Archiver
	local   Archiver
	logger  zerolog.Logger
}

// NewFallbackArchiver creates an archiver that tries primary (usually S3) and falls back to local.
// If primary is nil only local is used.
func NewFallbackArchiver(primary, local Archiver, logger zerolog.Logger) Archiver {
	return &fallbackArchiver{
		primary: primary,
		local:   local,
		logger:  logger.With().Str("component", "fallback-invoice-archive").Logger(),
	}
}

// Archive attempts the primary archiver and falls back to the local one on failure.
func (a *fallbackArchiver) Archive(ctx context.Context, key string, body []byte) error {
	if a.primary != nil {
		err := a.primary.Archive(ctx, key, body)
		if err == nil {
			return nil
		}
		a.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("primary invoice archive failed, falling back to local file system")
	}

	return a.local.Archive(ctx, key, body)
}
