package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendortally/decision/report"
)

const (
	inventoryCSV = "Title,SKU,Price,Categories,Option Value 1,Option Value 2\n" +
		"Mug,A1,10.00,Acme,,\n"
	ordersCSV = "Order ID,Lineitem sku,Lineitem quantity\n" +
		"1001,A1,3\n" +
		"1002,A1,2\n" +
		"1003,ZZ9,1\n"
)

func newTestServer(apiKey string) http.Handler {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	return NewServer(cfg, "test").Handler()
}

func uploadRequest(t *testing.T, target string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer("").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestReport(t *testing.T) {
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/api/v1/report", map[string]string{
		FieldInventory: inventoryCSV,
		FieldOrders:    ordersCSV,
	})
	newTestServer("").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc report.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Vendors, 1)
	assert.Equal(t, "Acme", doc.Vendors[0].Vendor)
	assert.Equal(t, 5, doc.Vendors[0].Quantity)
	assert.Equal(t, "50.00", doc.Vendors[0].TotalSales)
	assert.Len(t, doc.Orders, 2)
	assert.Len(t, doc.Diagnostics, 1)
}

func TestReportMarkdown(t *testing.T) {
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/api/v1/report?format=markdown", map[string]string{
		FieldInventory: inventoryCSV,
		FieldOrders:    ordersCSV,
	})
	newTestServer("").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "| **Acme** | 5 | $50.00 |")
}

func TestReportMissingUpload(t *testing.T) {
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/api/v1/report", map[string]string{
		FieldOrders: ordersCSV,
	})
	newTestServer("").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "please upload both files before continuing")
}

func TestReportMissingColumn(t *testing.T) {
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/api/v1/report", map[string]string{
		FieldInventory: "SKU,Title\nA1,Mug\n",
		FieldOrders:    ordersCSV,
	})
	newTestServer("").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")
}

func TestReportRequiresAPIKey(t *testing.T) {
	files := map[string]string{FieldInventory: inventoryCSV, FieldOrders: ordersCSV}
	srv := newTestServer("secret")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/v1/report", files))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := uploadRequest(t, "/api/v1/report", files)
	req.Header.Set("X-API-Key", "secret")
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
