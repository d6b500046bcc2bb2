// internal/services/storage_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

var ErrDocumentNotFound = errors.New("document not found")

// allowed upload types for funding applications and bank statements
var allowedDocumentExts = []string{".pdf", ".png", ".jpg", ".jpeg"}

const maxDocumentSize = 20 << 20 // 20 MB

// StorageService stores document content in S3 (or a local directory when no
// AWS credentials are configured) and attaches the resulting reference to the
// application's document metadata row.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
	docs     store.DocumentStore
}

func NewStorageService(cfg *config.Config, docs store.DocumentStore) (*StorageService, error) {
	svc := &StorageService{config: cfg, docs: docs}

	if cfg.AWS.AccessKeyID == "" {
		// Local filesystem storage for development
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

// UploadDocument stores the file bytes and records key, hash, and filename on
// the matching document slot of the application.
func (s *StorageService) UploadDocument(appID string, docType models.DocumentType, file multipart.File, header *multipart.FileHeader) (*models.Document, error) {
	if header.Size > maxDocumentSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum of %d bytes", header.Size, int64(maxDocumentSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, a := range allowedDocumentExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	doc, err := s.docs.GetDocument(appID, docType)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("applications/%s/%s/%s%s", appID, docType, uuid.New().String(), ext)

	contentType := header.Header.Get("Content-Type")
	if s.s3Client != nil {
		err = s.uploadToS3(fileBytes, key, contentType)
	} else {
		err = s.uploadToLocal(fileBytes, key)
	}
	if err != nil {
		return nil, err
	}

	doc.FileName = header.Filename
	doc.StorageKey = key
	doc.FileHash = utils.Sha256Hex(fileBytes)

	if err := s.docs.UpdateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) error {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}
	if contentType != "" {
		params.ContentType = aws.String(contentType)
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key string) error {
	path := filepath.Join("./uploads", key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
