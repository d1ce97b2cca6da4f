package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStore keeps service and decorator photos.
type ImageStore interface {
	UploadImage(ctx context.Context, localFilePath, destFolder string) (*UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// UploadedImage identifies a stored image and its public URL.
type UploadedImage struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// CloudinaryStore implements ImageStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore returns nil, nil when credentials are not configured.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// UploadImage uploads a file into destFolder and returns its permanent identifier.
func (s *CloudinaryStore) UploadImage(ctx context.Context, localFilePath, destFolder string) (*UploadedImage, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("no public ID returned for upload")
	}
	return &UploadedImage{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteImage deletes an image given its public ID.
func (s *CloudinaryStore) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
