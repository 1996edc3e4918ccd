package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashgap/internal/analysis"
	"cashgap/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		EMASpan:        analysis.DefaultEMASpan,
		CurrencySymbol: "R$",
		HTTPAddr:       ":0",
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileContent != "" {
		part, err := writer.CreateFormFile("file", "ledger.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAnalyzeEndpoint(t *testing.T) {
	csv := "data de vencimento,data de pagamento,valor,categoria,descrição,cliente/fornecedor\n" +
		`05/01/2024,,"R$ 100,00",despesa transporte,Frete,X` + "\n"

	body, contentType := multipartBody(t, map[string]string{
		"reference_date": "2024-02-01",
		"ema_span":       "3",
	}, csv)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	New(testConfig()).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result analysis.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 3, result.EMASpan)
	assert.Equal(t, 1, result.OverdueExpenses.Count)
	assert.True(t, result.InsufficientIncomeData)
}

func TestAnalyzeEndpointMissingColumns(t *testing.T) {
	body, contentType := multipartBody(t, nil, "valor,categoria\n10,Despesa\n")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	New(testConfig()).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload struct {
		Error          string   `json:"error"`
		MissingColumns []string `json:"missing_columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.MissingColumns, 4)
	assert.Contains(t, payload.MissingColumns, "data de vencimento")
}

func TestAnalyzeEndpointMissingFile(t *testing.T) {
	body, contentType := multipartBody(t, map[string]string{"ema_span": "8"}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	New(testConfig()).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointBadReferenceDate(t *testing.T) {
	body, contentType := multipartBody(t, map[string]string{
		"reference_date": "01/02/2024",
	}, "data de vencimento,data de pagamento,valor,categoria,descrição,cliente/fornecedor\n")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	New(testConfig()).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	New(testConfig()).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
