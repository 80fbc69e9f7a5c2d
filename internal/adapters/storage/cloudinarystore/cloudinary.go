package cloudinarystore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/phenrril/kiddocorner/internal/adapters/storage"
)

type Store struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func New(cloudinaryURL, folder string) (*Store, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &Store{cld: cld, folder: folder}, nil
}

func (s *Store) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	resource := "image"
	if strings.HasPrefix(storage.ContentType(filename, data), "video/") {
		resource = "video"
	}
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       s.folder,
		ResourceType: resource,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	return strings.Replace(res.URL, "http://", "https://", 1), nil
}
