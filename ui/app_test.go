package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Routes(t *testing.T) {
	a, err := NewApp(newTestServer(t), nil)
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		body        string
	}{
		{"index", "/", http.StatusOK, "text/html", "Collector's Dream"},
		{"script", "/static/js/app.js", http.StatusOK, "javascript", "/api"},
		{"stylesheet", "/static/css/app.css", http.StatusOK, "text/css", "--accent"},
		{"api", "/api/test", http.StatusOK, "application/json", "Server is working with new routes"},
		{"api not found", "/api/nope", http.StatusNotFound, "application/json", "Not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
