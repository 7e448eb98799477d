package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/ohmfruit/fruitstore-service/internal/dto"
	"github.com/ohmfruit/fruitstore-service/pkg/errs"
)

const (
	maxImagesPerRequest = 5
	maxImageSize        = 10 << 20
)

var allowedExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "tif": {}, "tiff": {},
	"webp": {}, "heic": {}, "heif": {}, "raw": {}, "cr2": {}, "nef": {}, "arw": {},
	"orf": {}, "rw2": {}, "svg": {}, "ai": {}, "eps": {}, "pdf": {}, "ico": {},
	"dds": {}, "psd": {}, "xcf": {}, "apng": {}, "avif": {}, "jxl": {}, "icns": {},
	"tga": {},
}

// allowedImage checks the file extension, ignoring case.
func allowedImage(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	_, ok := allowedExtensions[ext]
	return ok
}

// checkImages enforces the per request image limits before anything is
// uploaded.
func checkImages(images []dto.ImageFile) error {
	if len(images) > maxImagesPerRequest {
		return fmt.Errorf("%w: at most %d images", errs.ErrTooManyFiles, maxImagesPerRequest)
	}
	for _, img := range images {
		if !allowedImage(img.Filename) {
			return fmt.Errorf("%w: %s", errs.ErrNotAnImage, img.Filename)
		}
	}

	return nil
}

// uploadImages stores images in the given order. On failure the objects
// already stored are returned so the caller can remove them.
func uploadImages(ctx context.Context, storage ImageStorage, images []dto.ImageFile) (urls []string, err error) {
	for _, img := range images {
		body, err := readImage(img)
		if err != nil {
			return urls, err
		}

		url, err := storage.Upload(ctx, img.Filename, contentType(img, body), body)
		if err != nil {
			return urls, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func readImage(img dto.ImageFile) ([]byte, error) {
	if img.Size > maxImageSize {
		return nil, errs.ErrFileSizeExceedingLimit
	}

	rc, err := img.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", img.Filename, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", img.Filename, err)
	}
	if len(body) > maxImageSize {
		return nil, errs.ErrFileSizeExceedingLimit
	}

	return body, nil
}

func contentType(img dto.ImageFile, body []byte) string {
	if img.ContentType != "" && img.ContentType != "application/octet-stream" {
		return img.ContentType
	}
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(img.Filename))); byExt != "" {
		return byExt
	}

	return http.DetectContentType(body)
}
