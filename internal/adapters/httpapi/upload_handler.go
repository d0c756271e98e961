package httpapi

import (
	"fmt"
	"net/http"

	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UploadHandler accepts multipart file uploads and stores them
type UploadHandler struct {
	store       outbound.FileStore
	maxFiles    int
	maxFileSize int64
	logger      zerolog.Logger
}

type UploadHandlerParams struct {
	Store       outbound.FileStore
	MaxFiles    int
	MaxFileSize int64
	Logger      zerolog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		store:       params.Store,
		maxFiles:    params.MaxFiles,
		maxFileSize: params.MaxFileSize,
		logger:      params.Logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Create handles POST /upload. Files are sent under the "files" multipart
// field and the stored URLs are returned in request order.
func (h *UploadHandler) Create(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid multipart form", Details: err.Error()})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respondError(c, h.logger, shared.ErrNoFilesUploaded)
		return
	}
	if len(files) > h.maxFiles {
		respondError(c, h.logger, shared.ErrTooManyFiles)
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxFileSize {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:   "File too large",
				Details: fmt.Sprintf("%s exceeds the %d byte limit", fh.Filename, h.maxFileSize),
			})
			return
		}

		src, err := fh.Open()
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		url, err := h.store.Save(c.Request.Context(), fh.Filename, src)
		src.Close()
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		urls = append(urls, url)
	}

	h.logger.Info().
		Str("userId", caller.UserID).
		Int("count", len(urls)).
		Msg("Files uploaded")

	c.JSON(http.StatusCreated, gin.H{"urls": urls})
}
