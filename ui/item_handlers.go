package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"collectorsdream/adapters/excel"
	"collectorsdream/domain/collection"
	"collectorsdream/domain/core"
	"collectorsdream/internal/errors"

	"github.com/gin-gonic/gin"
)

// maxImportSize caps uploaded spreadsheets
const maxImportSize = 32 << 20

// handleListItems returns every item, or the members of ?category=
func (s *Server) handleListItems(c *gin.Context) {
	items, _, err := s.service.ListItems(c.Request.Context(), categoryParam(c))
	if err != nil {
		s.respondError(c, err, msgCategoryNotFound)
		return
	}
	if items == nil {
		items = []*collection.Item{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetItem(c *gin.Context) {
	item, err := s.service.GetItem(c.Request.Context(), core.ID(c.Param("id")))
	if err != nil {
		s.respondError(c, err, msgDocumentNotFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

// bindFields decodes the request body as a flat JSON object
func bindFields(c *gin.Context) (map[string]any, error) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("Invalid request data: %v", err))
	}
	return fields, nil
}

func (s *Server) handleCreateItem(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		s.respondError(c, err, "")
		return
	}

	item, err := s.service.CreateItem(c.Request.Context(), fields, categoryParam(c))
	if err != nil {
		s.respondError(c, err, msgCategoryNotFound)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		s.respondError(c, err, "")
		return
	}

	item, err := s.service.UpdateItem(c.Request.Context(), core.ID(c.Param("id")), fields, categoryParam(c))
	if err != nil {
		s.respondError(c, err, notFoundFor(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	if err := s.service.DeleteItem(c.Request.Context(), core.ID(c.Param("id"))); err != nil {
		s.respondError(c, err, msgDocumentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// handleExportItems streams the listed items as an xlsx attachment
func (s *Server) handleExportItems(c *gin.Context) {
	key := categoryParam(c)
	name := "collection"
	if key != "" {
		name = string(key)
	}
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))

	// Rendered into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := s.service.ExportItems(c.Request.Context(), &buf, key); err != nil {
		s.respondError(c, err, msgCategoryNotFound)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, excel.ContentType, buf.Bytes())
}

// handleImportItems stores one item per row of an uploaded xlsx or csv file
func (s *Server) handleImportItems(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	header, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, errors.InvalidInput("a file upload named \"file\" is required"), "")
		return
	}
	fileType, err := excel.FileTypeFor(header.Filename)
	if err != nil {
		s.respondError(c, errors.InvalidInput(err.Error()), "")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, errors.InvalidInput(err.Error()), "")
		return
	}
	defer file.Close()

	items, err := s.service.ImportItems(c.Request.Context(), file, fileType, categoryParam(c))
	if err != nil {
		s.respondError(c, err, msgCategoryNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Imported %d items", len(items)),
		"imported": len(items),
		"items":    items,
	})
}
