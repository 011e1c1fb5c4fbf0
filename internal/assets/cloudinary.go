package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/milena/wayfare-api/internal/config"
)

// CloudinaryStore implements Store on the Cloudinary upload API.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryStore{client: client, folder: cfg.Folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, kind Kind) (Ref, error) {
	resp, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: string(kind),
	})
	if err != nil {
		return Ref{}, fmt.Errorf("upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return Ref{}, fmt.Errorf("upload failed: %s", resp.Error.Message)
	}
	return Ref{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("destroy failed: %s", resp.Result)
	}
	return nil
}
