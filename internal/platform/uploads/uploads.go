package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// MaxFileBytes caps every uploaded file.
	MaxFileBytes = 5 * 1024 * 1024

	profilePhotoDir       = "profile-photos"
	identificationDocsDir = "identification-docs"
	thumbnailSize         = 256
)

var (
	ErrFileTooLarge    = errors.New("uploaded file exceeds maximum size")
	ErrEmptyFile       = errors.New("empty file is not allowed")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotAnImage      = errors.New("file does not decode as an image")
)

// File is one uploaded file read fully into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadFileHeader drains a multipart part into a File, enforcing the size
// ceiling and sanitizing the client-supplied name.
func ReadFileHeader(header *multipart.FileHeader) (File, error) {
	if header.Size > MaxFileBytes {
		return File{}, ErrFileTooLarge
	}

	part, err := header.Open()
	if err != nil {
		return File{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	content, err := io.ReadAll(io.LimitReader(part, MaxFileBytes+1))
	closeErr := part.Close()
	if err != nil {
		return File{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if closeErr != nil {
		return File{}, closeErr
	}
	if int64(len(content)) > MaxFileBytes {
		return File{}, ErrFileTooLarge
	}
	if len(content) == 0 {
		return File{}, ErrEmptyFile
	}

	contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return File{
		Name:        sanitizeFileName(header.Filename),
		ContentType: contentType,
		Data:        content,
	}, nil
}

// Store writes uploads under a two-way split directory layout: profile
// photos in one subdirectory, identification documents in the other.
type Store struct {
	Root string
}

func New(root string) (*Store, error) {
	for _, dir := range []string{profilePhotoDir, identificationDocsDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{Root: root}, nil
}

// SaveProfilePhoto persists an image upload and a JPEG thumbnail beside it.
// The returned path references the original file.
func (s *Store) SaveProfilePhoto(field string, file File) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", ErrUnsupportedType
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return "", ErrNotAnImage
	}

	path := filepath.Join(s.Root, profilePhotoDir, generateName(field, file.Name))
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", err
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	thumbPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.jpg"
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(85)); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}

// SaveIdentificationDoc persists one identification document, accepting
// images and PDFs.
func (s *Store) SaveIdentificationDoc(field string, file File) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") && file.ContentType != "application/pdf" {
		return "", ErrUnsupportedType
	}

	path := filepath.Join(s.Root, identificationDocsDir, generateName(field, file.Name))
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes previously saved uploads, including any thumbnail written
// next to a profile photo. Used to roll back when a later step fails.
func (s *Store) Remove(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		_ = os.Remove(path)
		thumbPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.jpg"
		if thumbPath != path {
			_ = os.Remove(thumbPath)
		}
	}
}

func generateName(field, originalName string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixNano(), suffix, ext)
}

func sanitizeFileName(name string) string {
	cleaned := strings.TrimSpace(filepath.Base(name))
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	if cleaned == "" || cleaned == "." || cleaned == string(filepath.Separator) {
		return "upload.bin"
	}
	return cleaned
}
