package extractions

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-critiquer/internal/extract"
	"resume-critiquer/internal/shared/metrics"
	"resume-critiquer/internal/shared/server/middleware"
	"resume-critiquer/internal/shared/server/respond"
	"resume-critiquer/internal/shared/storage/object"
	"resume-critiquer/internal/shared/telemetry"
	"resume-critiquer/internal/shared/util"
)

// multipart framing adds headers and boundaries on top of the file payload
const uploadOverhead = 1 << 20

// Handler accepts resume uploads and returns the extracted text. The original
// file and the extracted text are archived to the object store when one is
// configured; archiving is best effort and never fails the request.
type Handler struct {
	Store object.ObjectStore
}

// NewHandler constructs a Handler. store may be nil.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extractions", h.create)
	rg.GET("/extractions/files/*key", h.download)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxFileBytes+uploadOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if err := extract.Validate(mimeType, fileHeader.Size); err != nil {
		respondExtractError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, extract.MaxFileBytes+1))
	if err != nil {
		respondExtractError(c, errors.Join(extract.ErrReadFailure, err))
		return
	}
	if int64(len(data)) > extract.MaxFileBytes {
		respondExtractError(c, extract.ErrFileTooLarge)
		return
	}

	text, err := extract.FromBytes(c.Request.Context(), data)
	if err != nil {
		metrics.IncExtractionFailed()
		respondExtractError(c, err)
		return
	}
	metrics.IncExtractionCompleted()

	fileKey, textKey := h.archive(c, userID, fileHeader.Filename, data, text)

	payload := gin.H{
		"text":      text,
		"charCount": len([]rune(text)),
	}
	if fileKey != "" {
		payload["archive"] = gin.H{
			"file": fileKey,
			"text": textKey,
		}
	}
	respond.JSON(c, http.StatusOK, payload)
}

// download streams an archived upload back to its owner. Keys never leak
// across users: the storage key embeds the owner's hashed namespace and
// anything outside the caller's namespace reads as not found.
func (h *Handler) download(c *gin.Context) {
	if h.Store == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !strings.HasPrefix(key, util.HashUserKey(userID)+"/") {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("extraction.download_failed", map[string]any{
			"user_id":     userID,
			"storage_key": key,
			"error":       err.Error(),
		})
	}
}

// archive stores the original upload and its extracted text and returns their
// storage keys. Failures are logged and swallowed so a broken store cannot
// block extraction.
func (h *Handler) archive(c *gin.Context, userID, fileName string, data []byte, text string) (fileKey, textKey string) {
	if h.Store == nil {
		return "", ""
	}
	ctx := c.Request.Context()
	fileKey, _, _, err := h.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("extraction.archive_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"error":     err.Error(),
		})
		return "", ""
	}
	textKey, _, _, err = h.Store.Save(ctx, userID, fileName+".extracted.txt", bytes.NewReader([]byte(text)))
	if err != nil {
		telemetry.Warn("extraction.archive_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName + ".extracted.txt",
			"error":     err.Error(),
		})
		return fileKey, ""
	}
	return fileKey, textKey
}

func respondExtractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFileType):
		respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "only PDF files are supported, try pasting the resume text instead", nil)
	case errors.Is(err, extract.ErrFileTooLarge):
		respond.Error(c, http.StatusBadRequest, "file_too_large", "file exceeds the 10MB limit", nil)
	case errors.Is(err, extract.ErrParseFailure):
		respond.Error(c, http.StatusBadRequest, "parse_failure", "could not read this PDF, try pasting the resume text instead", nil)
	case errors.Is(err, extract.ErrInsufficientText):
		respond.Error(c, http.StatusBadRequest, "insufficient_text", "could not find enough text in this PDF, try pasting the resume text instead", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "read_failure", "failed to read the uploaded file", nil)
	}
}
