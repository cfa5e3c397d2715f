package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bucket layout: one bucket for project photos, one for proposal PDFs.
const (
	BucketProjects  = "conecta-projects"
	BucketProposals = "conecta-proposals"
)

type Config struct {
	Endpoint  string
	Port      int
	UseSSL    bool
	AccessKey string
	SecretKey string
}

// Client uploads and deletes attachment blobs against the object store.
// Deletion is best-effort: it logs failures and never propagates them, so
// blob cleanup can never abort the caller's primary operation.
type Client struct {
	mc     *minio.Client
	cfg    Config
	logger zerolog.Logger
}

func New(cfg Config) (*Client, error) {
	mc, err := minio.New(fmt.Sprintf("%s:%d", cfg.Endpoint, cfg.Port), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}

	logger := log.With().Str("component", "storage").Logger()
	return &Client{mc: mc, cfg: cfg, logger: logger}, nil
}

// EnsureBuckets makes sure every required bucket exists, creating missing
// ones with a public-read policy. Safe to run on every startup.
func (c *Client) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{BucketProjects, BucketProposals} {
		exists, err := c.mc.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("checking bucket %q: %w", bucket, err)
		}
		if exists {
			continue
		}

		if err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
			return fmt.Errorf("creating bucket %q: %w", bucket, err)
		}
		if err := c.mc.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
			return fmt.Errorf("setting policy on bucket %q: %w", bucket, err)
		}
		c.logger.Info().Str("bucket", bucket).Msg("bucket created with public-read policy")
	}
	return nil
}

// SaveProposal stores a proposal document and returns its public URL.
func (c *Client) SaveProposal(ctx context.Context, file io.Reader, size int64, filename, contentType string) (string, error) {
	return c.save(ctx, BucketProposals, file, size, filename, contentType, "pdf", "application/pdf")
}

// SavePhoto stores a project image and returns its public URL.
func (c *Client) SavePhoto(ctx context.Context, file io.Reader, size int64, filename, contentType string) (string, error) {
	return c.save(ctx, BucketProjects, file, size, filename, contentType, "jpg", "image/jpeg")
}

func (c *Client) save(ctx context.Context, bucket string, file io.Reader, size int64, filename, contentType, defaultExt, defaultType string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = defaultExt
	}
	if contentType == "" {
		contentType = defaultType
	}

	// random key so concurrent uploads of identically named files never collide
	key := uuid.New().String() + "." + ext

	_, err := c.mc.PutObject(ctx, bucket, key, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s/%s: %w", bucket, key, err)
	}

	return c.objectURL(bucket, key), nil
}

// Delete removes the blob behind a previously returned URL. Empty or
// malformed URLs are ignored; removal errors are logged and swallowed.
func (c *Client) Delete(ctx context.Context, fileURL string) {
	bucket, key, ok := parseObjectURL(fileURL)
	if !ok {
		if fileURL != "" {
			c.logger.Warn().Str("url", fileURL).Msg("skipping delete of unparseable attachment URL")
		}
		return
	}

	if err := c.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		c.logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("failed to delete attachment")
		return
	}
	c.logger.Info().Str("bucket", bucket).Str("key", key).Msg("attachment deleted")
}

func (c *Client) objectURL(bucket, key string) string {
	protocol := "http"
	if c.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s:%d/%s/%s", protocol, c.cfg.Endpoint, c.cfg.Port, bucket, key)
}

// parseObjectURL extracts bucket and object key from an attachment URL,
// e.g. http://localhost:9000/conecta-projects/abc-123.jpg
func parseObjectURL(fileURL string) (bucket, key string, ok bool) {
	if fileURL == "" {
		return "", "", false
	}

	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return "", "", false
	}

	return parts[0], strings.Join(parts[1:], "/"), true
}

func publicReadPolicy(bucket string) string {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucket)},
			},
		},
	}
	raw, _ := json.Marshal(policy)
	return string(raw)
}
