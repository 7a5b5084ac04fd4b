package adminhttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aharonba/mstnet/internal/errmetrics"
)

type fakeClientLister []string

func (f fakeClientLister) ClientIDs() []string { return f }

func newTestRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)
	router.GET("/clients", s.handleClients)
	return router
}

func TestHandleHealthReportsHealthy(t *testing.T) {
	s := New(":0", errmetrics.New(), fakeClientLister{})
	router := newTestRouter(s)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleStatsReflectsRecordedErrors(t *testing.T) {
	metrics := errmetrics.New()
	metrics.Record("handler", "parse", errors.New("bad command"))

	s := New(":0", metrics, fakeClientLister{"client-1", "client-2"})
	router := newTestRouter(s)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["total_errors"])
	assert.EqualValues(t, 2, body["client_count"])
}

func TestHandleClientsListsIDs(t *testing.T) {
	s := New(":0", errmetrics.New(), fakeClientLister{"client-1"})
	router := newTestRouter(s)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"client-1"}, body["clients"])
}
