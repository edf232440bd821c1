package storage

import (
	"context"
	"errors"
	"testing"

	"resonance/config"
	"resonance/utils"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUploader struct {
	files  []string
	result *uploader.UploadResult
	err    error
}

func (f *fakeUploader) Upload(_ context.Context, file interface{}, _ uploader.UploadParams) (*uploader.UploadResult, error) {
	f.files = append(f.files, file.(string))
	return f.result, f.err
}

func TestInlineStore(t *testing.T) {
	got, err := InlineStore{}.StoreAll(context.Background(), []string{"aGk=", "", "https://cdn.example/a.jpg", "data:image/png;base64,aGk="})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"data:image/jpeg;base64,aGk=",
		"https://cdn.example/a.jpg",
		"data:image/png;base64,aGk=",
	}, got)
}

func TestCloudinaryStoreUploadsInlineMedia(t *testing.T) {
	utils.SetLogger(zap.NewNop())
	up := &fakeUploader{result: &uploader.UploadResult{PublicID: "resonance/x", SecureURL: "https://res.cloudinary.com/x.jpg"}}
	s := &CloudinaryStore{upload: up, folder: "resonance"}

	got, err := s.StoreAll(context.Background(), []string{"aGk=", "https://cdn.example/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://res.cloudinary.com/x.jpg", "https://cdn.example/a.jpg"}, got)
	assert.Equal(t, []string{"data:image/jpeg;base64,aGk="}, up.files)
}

func TestCloudinaryStoreErrors(t *testing.T) {
	s := &CloudinaryStore{upload: &fakeUploader{err: errors.New("network")}}
	_, err := s.Store(context.Background(), "aGk=")
	assert.Error(t, err)

	s = &CloudinaryStore{upload: &fakeUploader{result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}}
	_, err = s.Store(context.Background(), "aGk=")
	assert.ErrorContains(t, err, "Invalid image file")
}

func TestNewMediaStoreFallsBackToInline(t *testing.T) {
	utils.SetLogger(zap.NewNop())
	store, err := NewMediaStore(config.Config{})
	require.NoError(t, err)
	assert.IsType(t, InlineStore{}, store)

	_, err = NewMediaStore(config.Config{CloudinaryCloudName: "demo"})
	assert.Error(t, err)
}
