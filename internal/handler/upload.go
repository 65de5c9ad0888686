package handler

import (
	"net/http"
	"path"
	"strings"

	"giftly-be/internal/storage"

	"github.com/labstack/echo/v4"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedBuckets = map[string]bool{
	"avatars":     true,
	"products":    true,
	"services":    true,
	"store-logos": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadHandler struct {
	uploader storage.Uploader
}

func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) Upload(c echo.Context) error {
	bucket := c.FormValue("bucket")
	if !allowedBuckets[bucket] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown bucket")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds 5 MB")
	}

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploader.Upload(c.Request().Context(), currentUserID(c), bucket, fileHeader.Filename, contentType, src)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
