package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/service"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

func TestImageService_UploadImage(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("should store sniffed images", func(t *testing.T) {
		store := new(mocks.MockAssetStore)
		store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "recipe-images/"+owner.String()+"/") && strings.HasSuffix(key, ".png")
		}), "image/png", pngHeader).Return("https://cdn.example.com/x.png", nil)

		svc := service.NewImageService(store)
		url, err := svc.UploadImage(ctx, owner, bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/x.png", url)
		store.AssertExpectations(t)
	})

	t.Run("should reject non images", func(t *testing.T) {
		store := new(mocks.MockAssetStore)
		svc := service.NewImageService(store)

		_, err := svc.UploadImage(ctx, owner, strings.NewReader("#!/bin/sh\necho hi\n"))
		assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject oversized files", func(t *testing.T) {
		svc := service.NewImageService(new(mocks.MockAssetStore))
		big := append(append([]byte{}, pngHeader...), make([]byte, service.MaxImageSize)...)

		_, err := svc.UploadImage(ctx, owner, bytes.NewReader(big))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5MB")
	})

	t.Run("should reject empty uploads", func(t *testing.T) {
		svc := service.NewImageService(new(mocks.MockAssetStore))
		_, err := svc.UploadImage(ctx, owner, bytes.NewReader(nil))
		assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
	})

	t.Run("should wrap storage failures", func(t *testing.T) {
		store := new(mocks.MockAssetStore)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("access denied"))

		_, err := service.NewImageService(store).UploadImage(ctx, owner, bytes.NewReader(pngHeader))
		assert.True(t, apperrors.Is(err, apperrors.KindServer))
	})

	t.Run("should report whether a store is configured", func(t *testing.T) {
		assert.False(t, service.NewImageService(nil).Enabled())
		assert.True(t, service.NewImageService(new(mocks.MockAssetStore)).Enabled())
	})
}
