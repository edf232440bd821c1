package storage

import (
	"context"

	"resonance/config"
	"resonance/utils"
)

// MediaStore turns submitted image/video values into what is persisted on a
// document: a hosted URL or a normalized data URL.
type MediaStore interface {
	Store(ctx context.Context, value string) (string, error)
	StoreAll(ctx context.Context, values []string) ([]string, error)
}

// NewMediaStore uses Cloudinary when it is configured and keeps media inline otherwise.
func NewMediaStore(cfg config.Config) (MediaStore, error) {
	if cfg.CloudinaryCloudName == "" {
		utils.GetLogger().Info("Cloudinary not configured, storing media inline")
		return InlineStore{}, nil
	}
	return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
}

func storeAll(ctx context.Context, s MediaStore, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		stored, err := s.Store(ctx, v)
		if err != nil {
			return nil, err
		}
		if stored != "" {
			out = append(out, stored)
		}
	}
	return out, nil
}

// InlineStore keeps media on the document itself.
type InlineStore struct{}

func (InlineStore) Store(_ context.Context, value string) (string, error) {
	return utils.NormalizeMedia(value), nil
}

func (s InlineStore) StoreAll(ctx context.Context, values []string) ([]string, error) {
	return storeAll(ctx, s, values)
}
