package ui

import (
	stderrors "errors"
	"net/http"

	"collectorsdream/domain/core"
	"collectorsdream/internal/errors"

	"github.com/gin-gonic/gin"
)

// Not-found messages the browser code matches on
const (
	msgDocumentNotFound = "Document not found"
	msgCategoryNotFound = "Category not found"
)

// respondError answers with {"message": ...} and the status mapped from err.
// Not-found errors use notFound as the message.
func (s *Server) respondError(c *gin.Context, err error, notFound string) {
	status := errors.HTTPStatus(err)
	_ = c.Error(err)

	message := err.Error()
	switch {
	case status == http.StatusNotFound && notFound != "":
		message = notFound
	case status >= http.StatusInternalServerError:
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"message": message})
}

// notFoundFor picks the message for a not-found error from the resource
// that was missing
func notFoundFor(err error) string {
	if stderrors.Is(err, core.ErrCategoryNotFound) {
		return msgCategoryNotFound
	}
	return msgDocumentNotFound
}

// categoryParam reads the optional ?category= filter
func categoryParam(c *gin.Context) core.CategoryKey {
	return core.CategoryKey(c.Query("category"))
}
