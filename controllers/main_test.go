package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ddiazp/maintenance-orders-api/config"
	"github.com/ddiazp/maintenance-orders-api/services"
	"github.com/ddiazp/maintenance-orders-api/store"
)

// setupTestServices wires every service against a fresh sqlite-backed row
// store with mocked pipeline collaborators, and returns the store for
// direct seeding and inspection.
func setupTestServices(t *testing.T) (*store.TableStore, *services.MockArtifactStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	st := store.NewTableStore(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		DatabaseURL: "test",
		TokenMode:   config.TokenModeSigned,
		JWTSecret:   "test-secret",
		TokenTTL:    12 * time.Hour,
	}

	artifacts := services.NewMockArtifactStore()
	reports := services.NewReportService(services.NewMockImageFetcher(), services.NewMockRenderer(), artifacts)

	services.InitAuthService(st, cfg)
	services.InitOrderService(st, reports, artifacts)
	services.InitUserService(st)

	return st, artifacts
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func performMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, fileField, fileName string, fileContent []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPut, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}
