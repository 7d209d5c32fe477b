package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"craftmarket/internal/storage"
)

const (
	maxUploadSize  = 5 << 20 // 5MB per file
	maxUploadFiles = 5
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// saveImage validates and stores one uploaded image, returning its public
// reference.
func saveImage(c echo.Context, store storage.FileStore, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadSize {
		return "", echo.NewHTTPError(http.StatusBadRequest, "file size must not exceed 5MB")
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unsupported file format, only JPEG, PNG and WebP are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "failed to read uploaded file")
	}
	defer src.Close()

	ref, err := store.Save(c.Request().Context(), storage.ObjectName(fh.Filename), contentType, src)
	if err != nil {
		return "", respondError(err)
	}
	return ref, nil
}

// formImages stores every file uploaded under the given form field. A request
// without a multipart body simply yields no images.
func formImages(c echo.Context, store storage.FileStore, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxUploadFiles {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "at most 5 files are allowed")
	}

	refs := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := saveImage(c, store, fh)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
