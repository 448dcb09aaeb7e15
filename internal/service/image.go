package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/recipe-notebook/backend/config"
)

// ImageService stores recipe images in the S3 bucket and returns their
// public URLs. Objects are never deleted; removing an image from a recipe
// only drops the URL reference.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Upload stores one image under recipe-images/<uuid>.<ext> and returns its
// public URL. The extension is taken from the original file name.
func (s *ImageService) Upload(ctx context.Context, name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] uploaded %s as %s", name, publicURL)
	return publicURL, nil
}

// UploadResult reports which files of a batch were stored and which were
// dropped.
type UploadResult struct {
	URLs   []string
	Failed []string
}

// UploadAll stores the files one at a time, in order, best-effort: a failed
// upload is skipped and reported in Failed without aborting the rest.
func (s *ImageService) UploadAll(ctx context.Context, names []string, contents [][]byte) UploadResult {
	var result UploadResult
	for i, name := range names {
		url, err := s.Upload(ctx, name, contents[i])
		if err != nil {
			log.Printf("[ImageService] upload of %s failed, skipping: %v", name, err)
			result.Failed = append(result.Failed, name)
			continue
		}
		result.URLs = append(result.URLs, url)
	}
	return result
}
