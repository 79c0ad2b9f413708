package critiques

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-critiquer/internal/shared/server/middleware"
	"resume-critiquer/internal/shared/server/respond"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handler wires HTTP handlers to the critiques service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches critique routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/critiques", h.createCritique)
	rg.GET("/critiques", h.listCritiques)
	rg.GET("/critiques/:id", h.getCritique)
	rg.DELETE("/critiques/:id", h.deleteCritique)
}

type createCritiqueRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) createCritique(c *gin.Context) {
	var req createCritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	userEmail := middleware.UserEmailFromContext(c)

	record, err := h.Svc.Analyze(c.Request.Context(), userID, userEmail, req.ResumeText, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyResume):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "resumeText is required", nil)
		case errors.Is(err, ErrSchemaViolation):
			respond.Error(c, http.StatusBadGateway, ErrorCodeSchemaMismatch, "analysis service returned a malformed critique, please try again", nil)
		default:
			respond.Error(c, http.StatusBadGateway, ErrorCodeLLM, err.Error(), nil)
		}
		return
	}

	c.Set("critiqueId", record.ID)
	respond.JSON(c, http.StatusOK, gin.H{
		"id":        record.ID,
		"critique":  record.Critique,
		"createdAt": record.CreatedAt,
	})
}

func (h *Handler) listCritiques(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	records, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list critiques", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"critiques": records,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) getCritique(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	recordID := c.Param("id")

	record, err := h.Svc.Get(c.Request.Context(), userID, recordID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "critique not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch critique", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, record)
}

func (h *Handler) deleteCritique(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	recordID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, recordID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "critique not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to delete critique", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": recordID})
}
