package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ebp-edu/rubricas-api/internal/dto"
	"github.com/ebp-edu/rubricas-api/internal/service"
	"github.com/ebp-edu/rubricas-api/pkg/storage"
)

func buildExportRouter(t *testing.T) *gin.Engine {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := service.NewExportService(files, signer, nil, service.ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewExportHandler(svc)
	router.POST("/api/v1/rubrics/export", h.Export)
	router.GET("/api/v1/export/:token", h.Download)
	return router
}

const exportPayload = `{
	"format": "csv",
	"rubric": {
		"title": "Rúbrica: Redacción de un cuento",
		"scaleHeaders": [{"level": "Insuficiente", "score": "0-4"}],
		"items": [{"itemName": "Claridad", "weight": 100, "descriptors": [
			{"level": "Insuficiente", "description": "Texto confuso", "score": "0-4"}
		]}],
		"specificCriteria": ["2.1. Produce textos escritos coherentes"]
	}
}`

func TestExportAndDownload(t *testing.T) {
	router := buildExportRouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rubrics/export", bytes.NewBufferString(exportPayload))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data dto.ExportRubricResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "csv", envelope.Data.Format)
	assert.Contains(t, envelope.Data.URL, "/api/v1/export/")

	req, _ = http.NewRequest(http.MethodGet, envelope.Data.URL, nil)
	resp = performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Body.String(), "Claridad")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	router := buildExportRouter(t)

	payload := `{"format": "docx", "rubric": {"title": "X"}}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rubrics/export", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDownloadInvalidToken(t *testing.T) {
	router := buildExportRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/export/no-such-token", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), `"code":"NOT_FOUND"`)
}
