package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gamestore-admin/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrForeignURL is returned when asked to delete a file this bucket did not serve.
var ErrForeignURL = errors.New("file URL does not belong to the bucket")

// R2Storage keeps product images in a Cloudflare R2 (S3-compatible) bucket.
type R2Storage struct {
	client        *s3.Client
	bucketName    string
	publicURL     string
	uploadTimeout time.Duration
}

func NewR2Storage(ctx context.Context, accountID, accessKey, secretKey, bucketName, publicURL string, uploadTimeout time.Duration) (*R2Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:        client,
		bucketName:    bucketName,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
		uploadTimeout: uploadTimeout,
	}, nil
}

// ObjectKey builds "uploads/<slug>-<uuid><ext>" for an original file name.
func ObjectKey(originalName, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/webp":
		ext = ".webp"
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	}

	base := utils.GenerateSlug(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if base == "" {
		return fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)
	}
	return fmt.Sprintf("uploads/%s-%s%s", base, uuid.NewString(), ext)
}

// UploadBuffer uploads a processed image and returns its public URL.
func (s *R2Storage) UploadBuffer(ctx context.Context, data []byte, contentType, originalName string) (string, error) {
	key := ObjectKey(originalName, contentType)

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload buffer to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// DeleteFile deletes a file from R2/S3 by its full public URL.
func (s *R2Storage) DeleteFile(ctx context.Context, fileURL string) error {
	key, ok := strings.CutPrefix(fileURL, s.publicURL+"/")
	if !ok || key == "" {
		return ErrForeignURL
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from R2: %w", err)
	}

	return nil
}
