// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shaivyah/storefront-backend/internal/config"
)

const productImageFolder = "products"

// StorageService stores product images on S3, or on local disk when no
// AWS credentials are configured.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
	maxSize  int64
}

type imageFile struct {
	data        []byte
	contentType string
	ext         string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{
		config:  cfg,
		maxSize: int64(cfg.Upload.MaxSizeMB) * 1024 * 1024,
	}

	if cfg.AWS.AccessKeyID == "" {
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

func (s *StorageService) UsesS3() bool {
	return s.s3Client != nil
}

// UploadImages validates every file before storing any of them and
// returns the public URLs in upload order.
func (s *StorageService) UploadImages(ctx context.Context, headers []*multipart.FileHeader) ([]string, error) {
	files := make([]imageFile, 0, len(headers))
	for _, header := range headers {
		f, err := s.readImage(header)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		key := s.generateFileName(f.ext, productImageFolder)

		var (
			url string
			err error
		)
		if s.s3Client != nil {
			url, err = s.uploadToS3(ctx, f, key)
		} else {
			url, err = s.uploadToLocal(f, key)
		}
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	logrus.WithField("count", len(urls)).Info("Images uploaded")
	return urls, nil
}

func (s *StorageService) readImage(header *multipart.FileHeader) (imageFile, error) {
	if s.maxSize > 0 && header.Size > s.maxSize {
		return imageFile{}, ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return imageFile{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if s.maxSize > 0 {
		reader = io.LimitReader(file, s.maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return imageFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return imageFile{}, ErrFileTooLarge
	}

	contentType, ext, ok := detectImageType(data)
	if !ok {
		return imageFile{}, ErrInvalidFileType
	}

	return imageFile{data: data, contentType: contentType, ext: ext}, nil
}

func (s *StorageService) uploadToS3(ctx context.Context, f imageFile, key string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(f.data),
		ContentType:   aws.String(f.contentType),
		ContentLength: aws.Int64(int64(len(f.data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.getS3URL(key), nil
}

func (s *StorageService) uploadToLocal(f imageFile, key string) (string, error) {
	path := filepath.Join(s.config.Upload.LocalDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, f.data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.Upload.PublicBaseURL, "/"), key), nil
}

func (s *StorageService) generateFileName(ext, folder string) string {
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

// detectImageType checks the file signature for JPEG, PNG, GIF or WebP.
func detectImageType(buffer []byte) (contentType, ext string, ok bool) {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return "image/jpeg", ".jpg", true
	case len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png", ".png", true
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return "image/gif", ".gif", true
	case len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return "image/webp", ".webp", true
	}
	return "", "", false
}
