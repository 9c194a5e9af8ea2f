package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshokDevireddy/persistency/internal/analysis"
	"github.com/AshokDevireddy/persistency/internal/config"
	"github.com/AshokDevireddy/persistency/internal/model"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	engine, err := analysis.NewEngine()
	require.NoError(t, err)

	c := &config.Config{}
	c.Server.AllowedOrigins = []string{"*"}
	c.Server.MaxUploadMB = 8
	return newRouter(engine, c)
}

func TestServe_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServe_Carriers(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/carriers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["carriers"], "americo")
}

func multipartUpload(t *testing.T, files map[string][]byte, agents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, data := range files {
		part, err := w.CreateFormFile(key, key+".csv")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if agents != "" {
		require.NoError(t, w.WriteField("agents", agents))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestServe_Analyze(t *testing.T) {
	roster := []byte(`PolicyNumber,PolicyStatus,EffectiveDate,TerminationDate,ProducerNumber,InsuredFirstName,InsuredLastName
M-1,ACTIVE,2024-02-01,,778899,Ana,Lopez
M-2,LAPSED,2024-02-01,,778899,Ben,Okafor
`)
	body, contentType := multipartUpload(t, map[string][]byte{"mutual-of-omaha": roster}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Mutual of Omaha", resp.Results[0].Carrier)
	assert.Equal(t, 2, resp.Results[0].TotalPolicies)
	assert.InDelta(t, 50.0, resp.Results[0].PersistencyRate, 0.001)
}

func TestServe_AnalyzeScoped(t *testing.T) {
	roster := []byte(fmt.Sprintf(`PolicyNumber,PolicyStatus,EffectiveDate,TerminationDate,ProducerNumber,InsuredFirstName,InsuredLastName
M-1,ACTIVE,2024-02-01,,%s,Ana,Lopez
M-2,ACTIVE,2024-02-01,,%s,Ben,Okafor
`, "111", "222"))
	body, contentType := multipartUpload(t, map[string][]byte{"mutual-of-omaha": roster}, "111")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].TotalPolicies)
}

func TestServe_AnalyzeNoFiles(t *testing.T) {
	body, contentType := multipartUpload(t, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_AnalyzeUnknownCarrier(t *testing.T) {
	body, contentType := multipartUpload(t, map[string][]byte{"globe-life": []byte("a,b\n")}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "globe-life")
}
