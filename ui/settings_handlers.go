package ui

import (
	"fmt"
	"net/http"

	"collectorsdream/domain/collection"
	"collectorsdream/internal/errors"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.service.LoadSettings(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(c *gin.Context) {
	var settings collection.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("Invalid request data: %v", err)), "")
		return
	}

	if err := s.service.SaveSettings(c.Request.Context(), settings); err != nil {
		s.respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully"})
}
