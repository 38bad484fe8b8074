package storage

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"restaurant-review-backend/internal/shared/apperror"
)

const (
	MaxImages = 5

	ErrCodeTooManyImages    = "TOO_MANY_IMAGES"
	ErrCodeUnsupportedImage = "UNSUPPORTED_IMAGE"
	ErrCodeImageTooLarge    = "IMAGE_TOO_LARGE"
)

// allowedImageTypes is matched against both the file extension and the
// declared content type. The file body is never inspected.
var allowedImageTypes = regexp.MustCompile(`jpeg|jpg|png`)

// ImageEncoder turns uploaded files into inline data URIs.
type ImageEncoder struct {
	MaxFiles int
	MaxSize  int64 // bytes per file, 0 means unlimited
}

func NewImageEncoder(maxSize int64) *ImageEncoder {
	return &ImageEncoder{MaxFiles: MaxImages, MaxSize: maxSize}
}

// Validate checks extension, declared content type and size.
func (e *ImageEncoder) Validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes.MatchString(ext) || !allowedImageTypes.MatchString(contentType) {
		return apperror.Validation(ErrCodeUnsupportedImage, "Only images are allowed")
	}
	if e.MaxSize > 0 && fh.Size > e.MaxSize {
		return apperror.Validation(ErrCodeImageTooLarge, fmt.Sprintf("Image %s exceeds %d bytes", fh.Filename, e.MaxSize))
	}
	return nil
}

// Encode reads the file and returns "data:<content-type>;base64,<payload>".
func (e *ImageEncoder) Encode(fh *multipart.FileHeader) (string, error) {
	if err := e.Validate(fh); err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	return fmt.Sprintf("data:%s;base64,%s", fh.Header.Get("Content-Type"), base64.StdEncoding.EncodeToString(data)), nil
}

// EncodeAll validates every file before encoding any of them.
func (e *ImageEncoder) EncodeAll(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > e.MaxFiles {
		return nil, tooManyImages(e.MaxFiles)
	}
	for _, fh := range files {
		if err := e.Validate(fh); err != nil {
			return nil, err
		}
	}

	encoded := make([]string, 0, len(files))
	for _, fh := range files {
		data, err := e.Encode(fh)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, data)
	}
	return encoded, nil
}

// ParseImageURLs splits a comma separated list of externally hosted images.
func ParseImageURLs(raw string, max int) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > max {
		return nil, tooManyImages(max)
	}

	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		urls = append(urls, strings.TrimSpace(p))
	}
	return urls, nil
}

func tooManyImages(max int) error {
	return apperror.Validation(ErrCodeTooManyImages, fmt.Sprintf("Maximum of %d images allowed.", max))
}
