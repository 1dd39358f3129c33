package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yukikurage/life-record-api/internal/config"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/logging"
	"github.com/yukikurage/life-record-api/internal/metrics"
	"github.com/yukikurage/life-record-api/internal/utils"
)

var (
	ErrNotAnImage    = errors.New("only image files can be uploaded")
	ErrImageTooLarge = errors.New("image is too large")
	ErrImageNotFound = errors.New("image not found")
)

// storableImageTypes are the sniffed types accepted for upload. SVG is left out
// since it can carry script.
var storableImageTypes = []string{
	"image/png",
	"image/vnd.mozilla.apng",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/avif",
	"image/heic",
}

// ImageService stores uploads under <dir>/<user_id>/<random name>.
type ImageService struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewImageService(cfg config.UploadConfig) *ImageService {
	return &ImageService{
		dir:       cfg.Dir,
		urlPrefix: strings.TrimRight(cfg.URLPrefix, "/"),
		maxBytes:  cfg.MaxSizeMiB << 20,
	}
}

// Save writes the upload to disk. The write is not tied to any database state.
func (s *ImageService) Save(userID uint64, file *multipart.FileHeader) (*dto.ImageUploadResponse, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return nil, ErrNotAnImage
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// The declared content type is client-controlled; check the bytes as well.
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if !mimetype.EqualsAny(detected.String(), storableImageTypes...) {
		return nil, ErrNotAnImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	// The stored extension decides the served Content-Type, so it comes from the
	// bytes and never from the client's file name.
	filename, err := utils.GenerateRandomFilename(detected.Extension())
	if err != nil {
		return nil, fmt.Errorf("failed to generate filename: %w", err)
	}

	userDir := filepath.Join(s.dir, strconv.FormatUint(userID, 10))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(userDir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	metrics.ImagesUploaded.Inc()
	logging.Info().Uint64("user_id", userID).Str("filename", filename).Int64("size", file.Size).Msg("Image uploaded")

	return &dto.ImageUploadResponse{
		URL:      fmt.Sprintf("%s/%d/%s", s.urlPrefix, userID, filename),
		Filename: filename,
	}, nil
}

// Path resolves a stored image. Anything that is not a plain file name inside the
// user's directory is reported as not found.
func (s *ImageService) Path(userID, filename string) (string, error) {
	if !isPlainName(userID) || !isPlainName(filename) {
		return "", ErrImageNotFound
	}
	if _, err := strconv.ParseUint(userID, 10, 64); err != nil {
		return "", ErrImageNotFound
	}

	path := filepath.Join(s.dir, userID, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrImageNotFound
	}
	return path, nil
}

func isPlainName(name string) bool {
	return name != "" &&
		name != "." &&
		name != ".." &&
		!strings.ContainsAny(name, `/\`) &&
		filepath.Base(name) == name
}
