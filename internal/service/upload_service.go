package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"eliteshop/internal/model"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	// Registers the webp decoder; imaging itself covers jpeg, png and gif.
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth  = 800
	maxImageHeight = 600
	jpegQuality    = 85
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// uploadService implements UploadService against the local filesystem.
type uploadService struct {
	dir     string
	maxSize int64
	logger  zerolog.Logger
}

// NewUploadService creates a new upload service storing images under dir.
func NewUploadService(dir string, maxSize int64, logger zerolog.Logger) UploadService {
	return &uploadService{
		dir:     dir,
		maxSize: maxSize,
		logger:  logger.With().Str("service", "upload").Logger(),
	}
}

// SaveProductImage validates, stores and resizes an uploaded image. The
// stored file gets a random name so uploads can never collide or traverse
// paths. If resizing fails the stored file is removed, leaving no orphan.
func (s *uploadService) SaveProductImage(ctx context.Context, originalName string, file io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExtensions[ext] {
		return "", model.ErrInvalidFileType
	}

	if size > s.maxSize {
		return "", model.ErrFileTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(s.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	// Belt and braces: never write more than the declared limit even if the
	// reported size lied.
	_, err = io.Copy(out, io.LimitReader(file, s.maxSize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	if err := s.resizeInPlace(path); err != nil {
		os.Remove(path)
		s.logger.Error().Err(err).Str("filename", filename).Msg("failed to process image")
		return "", fmt.Errorf("failed to process image: %w", err)
	}

	s.logger.Info().Str("filename", filename).Int64("size", size).Msg("product image stored")
	return filename, nil
}

// resizeInPlace bounds the image to 800x600 preserving aspect ratio and
// re-encodes it as JPEG, normalizing whatever color mode it arrived in.
func (s *uploadService) resizeInPlace(path string) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to rewrite image: %w", err)
	}

	err = imaging.Encode(out, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	return nil
}

// DeleteProductImage removes a stored image by filename.
func (s *uploadService) DeleteProductImage(ctx context.Context, filename string) error {
	path, err := s.ImagePath(filename)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return model.ErrImageNotFound
		}
		return fmt.Errorf("failed to stat image: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	s.logger.Info().Str("filename", filename).Msg("product image deleted")
	return nil
}

// ImagePath resolves a stored image's filesystem path. The filename is
// reduced to its base name so a crafted value can never escape the upload
// directory.
func (s *uploadService) ImagePath(filename string) (string, error) {
	if filename == "" {
		return "", model.NewValidationError("Filename required")
	}

	base := filepath.Base(filename)
	if base != filename || base == "." || base == ".." || strings.ContainsAny(base, `/\`) {
		return "", model.NewValidationError("Invalid filename")
	}

	return filepath.Join(s.dir, base), nil
}
