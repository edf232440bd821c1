package storage

import (
	"context"
	"fmt"

	"resonance/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Uploader is the part of the Cloudinary upload API the store uses.
type Uploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStore uploads inline media and keeps the secure URL.
type CloudinaryStore struct {
	upload Uploader
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{upload: &cld.Upload, folder: folder}, nil
}

// Store uploads data URLs and raw base64; hosted URLs are kept as they are.
func (s *CloudinaryStore) Store(ctx context.Context, value string) (string, error) {
	normalized := utils.NormalizeMedia(value)
	if normalized == "" || !utils.IsDataURL(normalized) {
		return normalized, nil
	}

	result, err := s.upload.Upload(ctx, normalized, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL")
	}
	utils.GetLogger().Debug("Media uploaded", zap.String("publicID", result.PublicID))
	return result.SecureURL, nil
}

func (s *CloudinaryStore) StoreAll(ctx context.Context, values []string) ([]string, error) {
	return storeAll(ctx, s, values)
}
