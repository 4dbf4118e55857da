package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var imageExts = []string{".jpg", ".jpeg", ".png"}

type FileService interface {
	// Attendance proof selfies
	UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, side string) (string, error)

	// Leave attachment documents
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// Employee profile pictures
	UploadProfilePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendanceProof stores a check-in/check-out selfie. side is "IN" or "OUT".
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, side string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !isAllowed(ext, imageExts) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	newFilename := fmt.Sprintf("%s-%s-%s%s", date.Format("2006-01-02"), strings.ToLower(side), uuid.New().String(), ext)
	path := filepath.Join("selfies", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeForExt(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	return uploadedPath, nil
}

// UploadLeaveAttachment stores a leave supporting document.
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !isAllowed(ext, []string{".pdf", ".jpg", ".jpeg", ".png"}) {
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png allowed")
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("leave_attachments", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeForExt(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

// UploadProfilePicture stores an employee profile picture.
func (s *fileServiceImpl) UploadProfilePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !isAllowed(ext, imageExts) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	newFilename := fmt.Sprintf("%s-%s%s", employeeID, uuid.New().String(), ext)
	path := filepath.Join("profile_pictures", newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeForExt(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload profile picture: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile removes a stored file by reference.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a stored reference.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path, 0)
}

func isAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
