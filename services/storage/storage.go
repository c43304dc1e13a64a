package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
)

// StorageService stores user-visible media (profile photos, certification
// documents) and resolves them back to delivery URLs.
type StorageService interface {
	// UploadFile stores the file under destFolder and returns its public id.
	UploadFile(ctx context.Context, file multipart.File, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL returns a delivery URL for a stored asset.
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
}

type cloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService returns a Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	return &cloudinaryStorage{cld: cld, cloudName: cloudName}
}

func (s *cloudinaryStorage) UploadFile(ctx context.Context, file multipart.File, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("storage: upload failed: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("storage: upload returned no public id")
	}
	return result.PublicID, nil
}

func (s *cloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", publicID, err)
	}
	return nil
}

func (s *cloudinaryStorage) getAsset(resourceType, publicID string) (*asset.Asset, error) {
	switch resourceType {
	case "image":
		return s.cld.Image(publicID)
	case "video":
		return s.cld.Video(publicID)
	default:
		return s.cld.Media(publicID)
	}
}

func (s *cloudinaryStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	a, err := s.getAsset(resourceType, publicID)
	if err != nil {
		return "", fmt.Errorf("storage: resolve asset %s: %w", publicID, err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("storage: build url for %s: %w", publicID, err)
	}
	return url, nil
}
