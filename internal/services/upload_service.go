package services

import (
	"context"
	"fmt"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/storage"
	"resolvenow_backend/pkg/apperrors"
)

const maxAttachmentsPerUpload = 5

type UploadService interface {
	// UploadAttachments validates and stores a batch of files, returning
	// url+name pairs ready to attach to a complaint.
	UploadAttachments(ctx context.Context, files []*multipart.FileHeader) ([]models.Attachment, error)
}

type UploadServiceImpl struct {
	store       storage.Storage
	maxSize     int64
	allowedExts map[string]struct{}
}

func NewUploadService(store storage.Storage, maxSize int64, allowedExtensions []string) UploadService {
	exts := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &UploadServiceImpl{
		store:       store,
		maxSize:     maxSize,
		allowedExts: exts,
	}
}

func (s *UploadServiceImpl) UploadAttachments(ctx context.Context, files []*multipart.FileHeader) ([]models.Attachment, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("no files provided")
	}
	if len(files) > maxAttachmentsPerUpload {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("at most %d files per upload", maxAttachmentsPerUpload))
	}

	for _, header := range files {
		if err := s.validate(header); err != nil {
			return nil, err
		}
	}

	attachments := make([]models.Attachment, 0, len(files))
	for _, header := range files {
		attachment, err := s.save(ctx, header)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

func (s *UploadServiceImpl) validate(header *multipart.FileHeader) error {
	if header.Size > s.maxSize {
		return apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if _, ok := s.allowedExts[ext]; !ok {
		return apperrors.ErrInvalidFileType
	}
	return nil
}

func (s *UploadServiceImpl) save(ctx context.Context, header *multipart.FileHeader) (models.Attachment, error) {
	file, err := header.Open()
	if err != nil {
		return models.Attachment{}, apperrors.InternalError(err)
	}
	defer file.Close()

	name := uniqueName(header.Filename)
	contentType := header.Header.Get("Content-Type")

	if err := s.store.Save(ctx, name, file, contentType); err != nil {
		return models.Attachment{}, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, name)
	if err != nil {
		return models.Attachment{}, apperrors.InternalError(err)
	}

	return models.Attachment{
		URL:  url,
		Name: header.Filename,
	}, nil
}

// uniqueName keeps the original extension but replaces the rest with a
// timestamp plus random suffix so uploads never collide.
func uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%09d%s", time.Now().UnixNano(), rand.Intn(1_000_000_000), ext)
}
