package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaService uploads admin product images to Cloudinary; the resulting
// URLs go into the product payload sent to the store API.
type MediaService struct {
	cld *cloudinary.Cloudinary
}

func NewMediaService(cloudName, apiKey, apiSecret string) (*MediaService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &MediaService{cld: cld}, nil
}

// UploadImage uploads a single image and returns its secure URL.
func (s *MediaService) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	unique := true
	overwrite := false
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload successful but no URL returned")
	}
	return result.SecureURL, nil
}

// UploadImages uploads several product images, preserving order.
func (s *MediaService) UploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s: %w", header.Filename, err)
		}
		url, uploadErr := s.UploadImage(ctx, file, folder)
		file.Close()
		if uploadErr != nil {
			return nil, uploadErr
		}
		urls = append(urls, url)
	}
	return urls, nil
}
