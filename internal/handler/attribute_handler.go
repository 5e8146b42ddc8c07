package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tastebase/backend-go/internal/database/service"
)

// AttributeHandler serves both tags and ingredients; the entity kind is
// fixed at construction instead of being re-derived per request.
type AttributeHandler struct {
	service service.AttributeService
	kind    string
	logger  *slog.Logger
}

// NewAttributeHandler creates a handler for one attribute kind
func NewAttributeHandler(service service.AttributeService, kind string, logger *slog.Logger) *AttributeHandler {
	return &AttributeHandler{
		service: service,
		kind:    kind,
		logger:  logger,
	}
}

type RenameAttributeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// List handles GET /recipe/{tags,ingredients} with optional
// ?assigned_only=1 restricting to attributes attached to a recipe.
func (h *AttributeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assignedOnly := false
	if raw := c.Query("assigned_only"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			assignedOnly = value != 0
		}
	}

	attributes, err := h.service.List(userID, assignedOnly)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attributes)
}

// Update handles PUT and PATCH /recipe/{tags,ingredients}/:id — rename only
func (h *AttributeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attributeID, ok := pathID(c)
	if !ok {
		return
	}

	var req RenameAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [AttributeHandler] Invalid rename request", "kind", h.kind, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"name": "this field is required"})
		return
	}

	attribute, err := h.service.Rename(userID, attributeID, req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attribute)
}

// Delete handles DELETE /recipe/{tags,ingredients}/:id
func (h *AttributeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attributeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(userID, attributeID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses
func (h *AttributeHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttributeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": h.kind + " not found"})
	default:
		h.logger.Error("❌ [AttributeHandler] Internal server error", "kind", h.kind, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
