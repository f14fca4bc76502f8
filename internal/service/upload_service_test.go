package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eliteshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUploadSize = 5 * 1024 * 1024

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadService_SaveProductImage(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	svc := NewUploadService(dir, testMaxUploadSize, logger)

	data := pngBytes(t, 1200, 900)
	filename, err := svc.SaveProductImage(ctx, "photo.png", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	// The stored name is random, never the client's.
	assert.NotEqual(t, "photo.png", filename)
	assert.True(t, strings.HasSuffix(filename, ".png"))

	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	// Everything is re-encoded and bounded to 800x600.
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 800)
	assert.LessOrEqual(t, cfg.Height, 600)
}

func TestUploadService_SaveProductImage_KeepsSmallImageSize(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	svc := NewUploadService(dir, testMaxUploadSize, logger)

	data := pngBytes(t, 100, 80)
	filename, err := svc.SaveProductImage(ctx, "small.png", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, filename))
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestUploadService_SaveProductImage_RejectsBadType(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	svc := NewUploadService(dir, testMaxUploadSize, logger)

	_, err := svc.SaveProductImage(ctx, "malware.exe", strings.NewReader("nope"), 4)
	assert.ErrorIs(t, err, model.ErrInvalidFileType)

	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestUploadService_SaveProductImage_RejectsOversize(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	svc := NewUploadService(dir, testMaxUploadSize, logger)

	_, err := svc.SaveProductImage(ctx, "huge.jpg", strings.NewReader(""), 6*1024*1024)
	assert.ErrorIs(t, err, model.ErrFileTooLarge)

	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestUploadService_SaveProductImage_CleansUpOnBadContent(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	svc := NewUploadService(dir, testMaxUploadSize, logger)

	// A valid extension with garbage content fails the decode; the partial
	// file must not survive.
	_, err := svc.SaveProductImage(ctx, "fake.png", strings.NewReader("not an image"), 12)
	require.Error(t, err)

	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestUploadService_DeleteProductImage(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	dir := t.TempDir()

	svc := NewUploadService(dir, testMaxUploadSize, logger)

	data := pngBytes(t, 10, 10)
	filename, err := svc.SaveProductImage(ctx, "photo.png", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProductImage(ctx, filename))
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, svc.DeleteProductImage(ctx, filename), model.ErrImageNotFound)
}

func TestUploadService_ImagePath(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewUploadService("/var/uploads", testMaxUploadSize, logger)

	t.Run("Plain filename resolves under the upload dir", func(t *testing.T) {
		path, err := svc.ImagePath("abc123.jpg")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/var/uploads", "abc123.jpg"), path)
	})

	tests := []struct {
		name     string
		filename string
	}{
		{name: "Empty filename", filename: ""},
		{name: "Parent traversal", filename: "../../etc/passwd"},
		{name: "Absolute path", filename: "/etc/passwd"},
		{name: "Dot", filename: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ImagePath(tt.filename)
			require.Error(t, err)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, 400, domainErr.Status)
		})
	}
}
