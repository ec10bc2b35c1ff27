package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryHandler handles course/country taxonomy HTTP requests
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /categories?type=
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Query("type"))
	if err != nil {
		handleServiceError(c, err, "", "Failed to fetch categories")
		return
	}

	respondData(c, http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), body.Name, body.Type)
	if err != nil {
		handleServiceError(c, err, "", "Failed to create category")
		return
	}

	respondCreated(c, category, capitalize(category.Type)+" created successfully")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// UpdateCategory handles PUT /categories (id in body)
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var body struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if body.ID == "" || body.Name == "" {
		respondError(c, http.StatusBadRequest, "ID and name are required")
		return
	}

	id, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, body.Name, body.Type)
	if err != nil {
		handleServiceError(c, err, "Category not found", "Failed to update category")
		return
	}

	respondDataMessage(c, category, "Category updated successfully")
}

// DeleteCategory handles DELETE /categories?id=
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		respondError(c, http.StatusBadRequest, "Category ID is required")
		return
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Category not found", "Failed to delete category")
		return
	}

	respondMessage(c, "Category deleted successfully")
}
