package ui

import (
	"fmt"
	"net/http"

	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/internal/errors"

	"github.com/gin-gonic/gin"
)

// saveCategoryRequest is the body of POST /api/categories. An empty key
// stores the category under the slug of its name.
type saveCategoryRequest struct {
	Key      core.CategoryKey     `json:"key"`
	Category *collection.Category `json:"category"`
}

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.service.ListCategories(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) handleSaveCategory(c *gin.Context) {
	var req saveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("Invalid request data: %v", err)), "")
		return
	}
	if req.Category == nil {
		s.respondError(c, errors.InvalidInput("category is required"), "")
		return
	}

	key, err := s.service.SaveCategory(c.Request.Context(), req.Key, *req.Category)
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category saved successfully", "key": key})
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	if err := s.service.DeleteCategory(c.Request.Context(), core.CategoryKey(c.Param("key"))); err != nil {
		s.respondError(c, err, msgCategoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// handleCategorySummary profiles the items that belong to a category
func (s *Server) handleCategorySummary(c *gin.Context) {
	summary, err := s.service.SummarizeCategory(c.Request.Context(), core.CategoryKey(c.Param("key")))
	if err != nil {
		s.respondError(c, err, msgCategoryNotFound)
		return
	}
	c.JSON(http.StatusOK, summary)
}
