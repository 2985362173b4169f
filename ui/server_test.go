package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectorsdream/adapters/excel"
	"collectorsdream/adapters/jsonfile"
	"collectorsdream/adapters/sqlstore"
	"collectorsdream/app"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	db, err := sqlstore.Open(t.Context(), "sqlite", filepath.Join(dir, "collectors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := app.NewCollectionService(
		sqlstore.NewItemRepository(db),
		jsonfile.NewCategoryStore(filepath.Join(dir, "categories.json"), nil),
		jsonfile.NewSettingsStore(filepath.Join(dir, "settings.json")),
		nil,
	)
	return NewServer(service, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestServer_Test(t *testing.T) {
	h := newTestServer(t).Handler()

	w := doJSON(t, h, http.MethodGet, "/api/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Server is working with new routes"}`, w.Body.String())
}

func TestServer_ItemLifecycle(t *testing.T) {
	h := newTestServer(t).Handler()

	w := doJSON(t, h, http.MethodGet, "/api/collection", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/api/collection", map[string]any{"name": "Penny Black", "year": 1840})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Penny Black", created["name"])

	w = doJSON(t, h, http.MethodGet, "/api/collection/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1840.0, decode[map[string]any](t, w)["year"])

	w = doJSON(t, h, http.MethodPut, "/api/collection/"+id, map[string]any{"name": "Penny Red"})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, "Penny Red", updated["name"])
	assert.NotContains(t, updated, "year")

	w = doJSON(t, h, http.MethodDelete, "/api/collection/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Document deleted successfully"}`, w.Body.String())

	w = doJSON(t, h, http.MethodDelete, "/api/collection/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Document not found"}`, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/api/collection/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_CreateItemBadBody(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/collection", strings.NewReader(`[1,2]`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/collection", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["message"], "invalid item")
}

func TestServer_Categories(t *testing.T) {
	h := newTestServer(t).Handler()

	category := map[string]any{
		"name": "Coins",
		"fields": []map[string]any{
			{"name": "country", "label": "Country", "type": "text"},
			{"name": "year", "label": "Year", "type": "number"},
		},
	}
	w := doJSON(t, h, http.MethodPost, "/api/categories", map[string]any{"category": category})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Category saved successfully","key":"coins"}`, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	listed := decode[map[string]map[string]any](t, w)
	assert.Equal(t, "Coins", listed["coins"]["name"])

	w = doJSON(t, h, http.MethodPost, "/api/collection?category=coins", map[string]any{"country": "Peru", "year": "1921"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1921.0, decode[map[string]any](t, w)["year"])

	w = doJSON(t, h, http.MethodPost, "/api/collection?category=coins", map[string]any{"year": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	doJSON(t, h, http.MethodPost, "/api/collection", map[string]any{"title": "Dune"})

	w = doJSON(t, h, http.MethodGet, "/api/collection?category=coins", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = doJSON(t, h, http.MethodGet, "/api/categories/coins/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode[map[string]any](t, w)["items"])

	w = doJSON(t, h, http.MethodGet, "/api/collection?category=stamps", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Category not found"}`, w.Body.String())

	w = doJSON(t, h, http.MethodDelete, "/api/categories/coins", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Category deleted successfully"}`, w.Body.String())

	w = doJSON(t, h, http.MethodDelete, "/api/categories/coins", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Category not found"}`, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/api/collection", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 2)
}

func TestServer_NonFiniteNumbers(t *testing.T) {
	h := newTestServer(t).Handler()

	category := map[string]any{
		"name":   "Coins",
		"fields": []map[string]any{{"name": "price", "label": "Price", "type": "number"}},
	}
	w := doJSON(t, h, http.MethodPost, "/api/categories", map[string]any{"category": category})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/api/collection?category=coins", map[string]any{"price": "NaN"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, decode[map[string]string](t, w)["message"], "finite")

	// Without a category the value is stored as text
	w = doJSON(t, h, http.MethodPost, "/api/collection", map[string]any{"price": "Inf"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/api/categories/coins/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[map[string]any](t, w)
	assert.Equal(t, 1.0, summary["items"])
	fields := summary["fields"].([]any)
	require.Len(t, fields, 1)
	price := fields[0].(map[string]any)
	assert.Equal(t, 1.0, price["nonNumeric"])
	assert.NotContains(t, price, "numeric")
}

func TestServer_SaveCategoryInvalid(t *testing.T) {
	h := newTestServer(t).Handler()

	w := doJSON(t, h, http.MethodPost, "/api/categories", map[string]any{"key": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/categories", map[string]any{
		"category": map[string]any{"name": "Empty", "fields": []any{}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Settings(t *testing.T) {
	h := newTestServer(t).Handler()

	w := doJSON(t, h, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"darkMode":false}`, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/api/settings", map[string]any{"darkMode": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Settings saved successfully"}`, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/api/settings", nil)
	assert.JSONEq(t, `{"darkMode":true}`, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/api/settings", map[string]any{"darkMode": "yes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_ExportAndImport(t *testing.T) {
	h := newTestServer(t).Handler()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "stamps.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Name,Year\nPenny Black,1840\nInverted Jenny,1918\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/collection/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 2.0, decode[map[string]any](t, w)["imported"])

	w = doJSON(t, h, http.MethodGet, "/api/collection/export.xlsx", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excel.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestServer_ImportRequiresFile(t *testing.T) {
	h := newTestServer(t).Handler()

	w := doJSON(t, h, http.MethodPost, "/api/collection/import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_CORS(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/collection", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))

	w = doJSON(t, h, http.MethodGet, "/api/test", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
