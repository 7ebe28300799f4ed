package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/types"
)

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImageStore persists recipe images. Save returns the stored path, which is
// what gets written to recipes.image_path.
type ImageStore interface {
	Save(ctx context.Context, upload *types.ImageUpload) (string, error)
	Delete(ctx context.Context, storedPath string) error
	URL(storedPath string) string
}

// imageExt validates the upload's extension and returns it lowercased
func imageExt(upload *types.ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := allowedImageTypes[ext]; !ok {
		return "", ErrInvalidImage
	}
	return ext, nil
}

// newImageName returns a collision-free name that keeps the original extension
func newImageName(ext string) string {
	return uuid.New().String() + ext
}

// isGeneratedImageName reports whether name has the shape newImageName produces
func isGeneratedImageName(name string) bool {
	ext := filepath.Ext(name)
	if _, ok := allowedImageTypes[ext]; !ok {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	if len(stem) != 36 {
		return false
	}
	_, err := uuid.Parse(stem)
	return err == nil
}

// readLimited reads at most max bytes and fails if r holds more
func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > max {
		return nil, ErrImageTooLarge
	}
	return data, nil
}

// LocalImageStore writes images under a directory served at /images
type LocalImageStore struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

func NewLocalImageStore(dir string, maxBytes int64, logger *slog.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir, maxBytes: maxBytes, logger: logger}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, upload *types.ImageUpload) (string, error) {
	ext, err := imageExt(upload)
	if err != nil {
		return "", err
	}
	if upload.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}

	name := newImageName(ext)
	full := filepath.Join(s.dir, name)

	// O_EXCL so an existing file is never overwritten
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	written, copyErr := io.Copy(f, io.LimitReader(upload.Reader, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		err = fmt.Errorf("failed to write image: %w", copyErr)
	case closeErr != nil:
		err = fmt.Errorf("failed to write image: %w", closeErr)
	case written > s.maxBytes:
		err = ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}

	stored := filepath.ToSlash(full)
	s.logger.InfoContext(ctx, "Stored image", slog.String("path", stored), slog.String("original_name", upload.Filename))
	return stored, nil
}

// Delete removes an image written by Save. Any other name, such as a shared
// "images/<original name>" path from an older deployment, is left on disk.
func (s *LocalImageStore) Delete(ctx context.Context, storedPath string) error {
	if storedPath == "" {
		return nil
	}
	name := filepath.Base(filepath.FromSlash(storedPath))
	if !isGeneratedImageName(name) {
		s.logger.DebugContext(ctx, "Keeping image not created by this store", slog.String("path", storedPath))
		return nil
	}
	full := filepath.Join(s.dir, name)
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *LocalImageStore) URL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return "/images/" + path.Base(filepath.ToSlash(storedPath))
}

// S3API is the subset of the S3 client used for image storage
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ImageStore uploads images to a bucket and stores their public URL
type S3ImageStore struct {
	client   S3API
	bucket   string
	baseURL  string
	prefix   string
	maxBytes int64
	logger   *slog.Logger
}

func NewS3ImageStore(cfg *config.S3Config, maxBytes int64, logger *slog.Logger) *S3ImageStore {
	return newS3ImageStore(cfg.Client, cfg.BucketName, cfg.PublicURL(""), maxBytes, logger)
}

func newS3ImageStore(client S3API, bucket, baseURL string, maxBytes int64, logger *slog.Logger) *S3ImageStore {
	return &S3ImageStore{
		client:   client,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		prefix:   "recipe-images/",
		maxBytes: maxBytes,
		logger:   logger,
	}
}

func (s *S3ImageStore) Save(ctx context.Context, upload *types.ImageUpload) (string, error) {
	ext, err := imageExt(upload)
	if err != nil {
		return "", err
	}
	if upload.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}

	data, err := readLimited(upload.Reader, s.maxBytes)
	if err != nil {
		return "", err
	}

	key := s.prefix + newImageName(ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(allowedImageTypes[ext]),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.baseURL + "/" + key
	s.logger.InfoContext(ctx, "Uploaded image to S3", slog.String("url", publicURL))
	return publicURL, nil
}

func (s *S3ImageStore) Delete(ctx context.Context, storedPath string) error {
	key := strings.TrimPrefix(storedPath, s.baseURL+"/")
	if key == "" || !strings.HasPrefix(key, s.prefix) {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (s *S3ImageStore) URL(storedPath string) string {
	return storedPath
}

// NewImageStore builds the store selected by cfg.ImageStorage
func NewImageStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ImageStore, error) {
	maxBytes := int64(cfg.ImageMaxUploadMB) << 20
	switch cfg.ImageStorage {
	case config.StorageS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3ImageStore(s3Cfg, maxBytes, logger), nil
	case config.StorageLocal, "":
		return NewLocalImageStore(cfg.ImageDir, maxBytes, logger)
	default:
		return nil, fmt.Errorf("unsupported image storage %q", cfg.ImageStorage)
	}
}
