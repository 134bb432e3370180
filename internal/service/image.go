package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
)

// MaxImageSize bounds uploaded images.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AssetStore hosts uploaded files and returns their public address.
type AssetStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// S3AssetStore keeps assets in an S3 (or S3-compatible) bucket.
type S3AssetStore struct {
	cfg *config.S3Config
}

func NewS3AssetStore(cfg *config.S3Config) *S3AssetStore {
	return &S3AssetStore{cfg: cfg}
}

func (s *S3AssetStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.cfg.PublicURL(key), nil
}

// ImageService validates uploaded images and hands them to the asset store.
type ImageService struct {
	store AssetStore
}

func NewImageService(store AssetStore) *ImageService {
	return &ImageService{store: store}
}

// Enabled reports whether an asset store is configured.
func (s *ImageService) Enabled() bool {
	return s != nil && s.store != nil
}

// UploadImage reads at most MaxImageSize bytes from r, checks the sniffed
// content type and stores the image under a fresh key.
func (s *ImageService) UploadImage(ctx context.Context, ownerID uuid.UUID, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", apperrors.BadRequest("Could not read uploaded file")
	}
	if len(data) == 0 {
		return "", apperrors.BadRequest("No image uploaded")
	}
	if len(data) > MaxImageSize {
		return "", apperrors.BadRequest("Image must be 5MB or smaller")
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", apperrors.BadRequest("Only JPEG, PNG, GIF and WebP images are allowed")
	}

	key := fmt.Sprintf("recipe-images/%s/%s%s", ownerID, uuid.New(), ext)
	url, err := s.store.Put(ctx, key, contentType, data)
	if err != nil {
		return "", apperrors.Server("Failed to upload image", err)
	}

	logging.Ctx(ctx).Info().Str("key", key).Int("bytes", len(data)).Msg("image uploaded")
	return url, nil
}
