package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/Avinash-006/UniChat/internal/models"
	"github.com/Avinash-006/UniChat/internal/store"
	"github.com/Avinash-006/UniChat/pkg/logger"
	"github.com/google/uuid"
)

// FileService keeps file metadata in the database and file contents in the
// blob store.
type FileService struct {
	Files   FileRepository
	Users   UserRepository
	Storage BlobStore
	Audit   *AuditService
}

func NewFileService(files FileRepository, users UserRepository, storageClient BlobStore, audit *AuditService) *FileService {
	return &FileService{Files: files, Users: users, Storage: storageClient, Audit: audit}
}

type UploadInput struct {
	UserID      int64
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

func (s *FileService) Upload(ctx context.Context, in UploadInput) (*models.File, error) {
	owner, err := s.Users.FindByID(ctx, in.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", in.UserID, err)
	}

	filename := filepath.Base(strings.TrimSpace(in.FileName))
	if filename == "" || filename == "." || filename == "/" {
		return nil, ErrInvalidFileName
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%d/%s/%s", owner.ID, uuid.New().String(), filename)
	if err := s.Storage.Upload(ctx, objectName, in.Content, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("storing file contents: %w", err)
	}

	file := &models.File{
		FileName:    filename,
		FileType:    contentType,
		Size:        in.Size,
		UserID:      owner.ID,
		StoragePath: objectName,
	}
	if err := s.Files.Create(ctx, file); err != nil {
		_ = s.Storage.Delete(ctx, objectName)
		return nil, fmt.Errorf("creating file record: %w", err)
	}

	logger.InfoWithUser(owner.Username, "file_uploaded", map[string]interface{}{
		"file_id":      file.ID,
		"file_name":    filename,
		"file_size":    in.Size,
		"mime_type":    contentType,
		"storage_path": objectName,
	})
	s.Audit.Record(ctx, AuditEntry{
		Username:     owner.Username,
		Action:       "file.upload",
		ResourceType: "file",
		ResourceID:   &file.ID,
		Details: map[string]interface{}{
			"file_name": filename,
			"file_size": in.Size,
			"mime_type": contentType,
		},
	})

	return file, nil
}

func (s *FileService) GetFile(ctx context.Context, id int64) (*models.File, error) {
	file, err := s.Files.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading file %d: %w", id, err)
	}
	return file, nil
}

// Open returns the file's metadata and a reader over its contents. The caller
// closes the reader.
func (s *FileService) Open(ctx context.Context, id int64) (*models.File, io.ReadCloser, error) {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.Storage.Open(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file %d contents: %w", id, err)
	}

	logger.Info("file_downloaded", map[string]interface{}{
		"file_id":   file.ID,
		"file_name": file.FileName,
		"file_size": file.Size,
	})
	return file, body, nil
}

func (s *FileService) DownloadURL(ctx context.Context, id int64, expiry time.Duration) (string, error) {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.Storage.PresignedGetURL(ctx, file.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presigning file %d: %w", id, err)
	}
	return url, nil
}

func (s *FileService) ListUserFiles(ctx context.Context, username string) ([]models.FileDTO, error) {
	owner, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", username, err)
	}

	files, err := s.Files.FindByUserID(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("listing files for %s: %w", username, err)
	}

	dtos := make([]models.FileDTO, 0, len(files))
	for i := range files {
		dtos = append(dtos, models.NewFileDTO(&files[i]))
	}
	return dtos, nil
}

// Delete removes the file's row and its stored contents. It reports false when
// the file does not exist. A blob that cannot be removed is logged and left
// behind.
func (s *FileService) Delete(ctx context.Context, id int64) (bool, error) {
	file, err := s.Files.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading file %d: %w", id, err)
	}

	if err := s.Files.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("deleting file %d: %w", id, err)
	}
	if err := s.Storage.Delete(ctx, file.StoragePath); err != nil {
		logger.Warn("file_blob_orphaned", map[string]interface{}{
			"file_id":      id,
			"storage_path": file.StoragePath,
			"error":        err.Error(),
		})
	}

	s.Audit.Record(ctx, AuditEntry{
		Action:       "file.delete",
		ResourceType: "file",
		ResourceID:   &id,
		Details:      map[string]interface{}{"file_name": file.FileName},
	})
	return true, nil
}
