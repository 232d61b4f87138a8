package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"rooya_backend/internal/storage"
	"rooya_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves files written through the storage layer.
type FileHandler struct {
	*BaseHandler
	files storage.Storage
}

func NewFileHandler(base *BaseHandler, files storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		files:       files,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*key", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	key := c.Param("key")

	f, err := h.files.Open(c.Request.Context(), key)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, f)
}
