package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tastebase/backend-go/internal/config"
	"github.com/tastebase/backend-go/internal/database/models"
	"github.com/tastebase/backend-go/internal/database/repository"
	"github.com/tastebase/backend-go/internal/database/service"
)

// RecipeHandler handles HTTP requests for recipe management
type RecipeHandler struct {
	service service.RecipeService
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(service service.RecipeService, cfg *config.Config, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// ==================== Request/Response DTOs ====================

type AttributePayload struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CreateRecipeRequest struct {
	Title       string             `json:"title" binding:"required,max=255"`
	Description string             `json:"description"`
	TimeMinutes *int               `json:"time_minutes" binding:"required"`
	Price       *decimal.Decimal   `json:"price" binding:"required"`
	Link        string             `json:"link" binding:"max=255"`
	Tags        []AttributePayload `json:"tags" binding:"omitempty,dive"`
	Ingredients []AttributePayload `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest serves PUT and PATCH. A nil field was absent from
// the payload; for tags/ingredients that distinction decides between
// "leave alone" and "replace".
type UpdateRecipeRequest struct {
	Title       *string             `json:"title" binding:"omitempty,max=255"`
	Description *string             `json:"description"`
	TimeMinutes *int                `json:"time_minutes"`
	Price       *decimal.Decimal    `json:"price"`
	Link        *string             `json:"link" binding:"omitempty,max=255"`
	Tags        *[]AttributePayload `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]AttributePayload `json:"ingredients" binding:"omitempty,dive"`
}

type RecipeSummaryResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
}

type RecipeDetailResponse struct {
	RecipeSummaryResponse
	Description string              `json:"description"`
	Tags        []service.Attribute `json:"tags"`
	Ingredients []service.Attribute `json:"ingredients"`
	Image       *string             `json:"image"`
}

func (h *RecipeHandler) summaryResponse(recipe *models.Recipe) RecipeSummaryResponse {
	return RecipeSummaryResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
	}
}

func (h *RecipeHandler) detailResponse(recipe *models.Recipe) RecipeDetailResponse {
	tags := make([]service.Attribute, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, service.Attribute{ID: tag.ID, Name: tag.Name})
	}
	ingredients := make([]service.Attribute, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, service.Attribute{ID: ingredient.ID, Name: ingredient.Name})
	}

	var image *string
	if recipe.Image != nil {
		url := path.Join("/media", *recipe.Image)
		image = &url
	}

	return RecipeDetailResponse{
		RecipeSummaryResponse: h.summaryResponse(recipe),
		Description:           recipe.Description,
		Tags:                  tags,
		Ingredients:           ingredients,
		Image:                 image,
	}
}

// ==================== Handlers ====================

// List handles GET /recipe/recipes with optional ?tags= and ?ingredients=
// comma-separated ID filters.
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"tags": "expected a comma-separated list of IDs"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ingredients": "expected a comma-separated list of IDs"})
		return
	}

	recipes, err := h.service.List(userID, tagIDs, ingredientIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response := make([]RecipeSummaryResponse, 0, len(recipes))
	for i := range recipes {
		response = append(response, h.summaryResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /recipe/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(userID, recipeID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.detailResponse(recipe))
}

// Create handles POST /recipe/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [RecipeHandler] Invalid create request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Title, time_minutes and price required."})
		return
	}

	recipe, err := h.service.Create(userID, service.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
		Tags:        toAttributeInputs(req.Tags),
		Ingredients: toAttributeInputs(req.Ingredients),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.detailResponse(recipe))
}

// Update handles PUT and PATCH /recipe/recipes/:id. PUT demands the
// required fields; beyond that both share replace semantics, and an
// owner supplied by the client is ignored either way.
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [RecipeHandler] Invalid update request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if c.Request.Method == http.MethodPut {
		missing := []string{}
		if req.Title == nil {
			missing = append(missing, "title")
		}
		if req.TimeMinutes == nil {
			missing = append(missing, "time_minutes")
		}
		if req.Price == nil {
			missing = append(missing, "price")
		}
		if len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + strings.Join(missing, ", ")})
			return
		}
	}

	update := service.RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}
	if req.Tags != nil {
		tags := toAttributeInputs(*req.Tags)
		update.Tags = &tags
	}
	if req.Ingredients != nil {
		ingredients := toAttributeInputs(*req.Ingredients)
		update.Ingredients = &ingredients
	}

	recipe, err := h.service.Update(userID, recipeID, update)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.detailResponse(recipe))
}

// Delete handles DELETE /recipe/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(userID, recipeID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /recipe/recipes/:id/upload-image with a single
// multipart "image" field.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		h.logger.Warn("⚠️ [RecipeHandler] Image not provided", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"image": "no image provided"})
		return
	}

	if header.Size > h.cfg.MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"image": "image exceeds the size limit"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("❌ [RecipeHandler] Failed to open upload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"image": "unreadable upload"})
		return
	}
	defer file.Close()

	recipe, err := h.service.SaveImage(userID, recipeID, header.Filename, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response := h.detailResponse(recipe)
	c.JSON(http.StatusOK, gin.H{
		"id":    recipe.ID,
		"image": response.Image,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *RecipeHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrRecipeNotFound):
		// Someone else's recipe and a nonexistent one answer identically.
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"price": "must be non-negative with at most 2 decimal places"})
	case errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"image": "unsupported image type"})
	default:
		h.logger.Error("❌ [RecipeHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ==================== Helpers ====================

func toAttributeInputs(payloads []AttributePayload) []service.AttributeInput {
	inputs := make([]service.AttributeInput, 0, len(payloads))
	for _, payload := range payloads {
		inputs = append(inputs, service.AttributeInput{Name: payload.Name})
	}
	return inputs
}

func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// An unparsable ID can never match a record; keep it a 404 so the
		// response shape matches a miss.
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
