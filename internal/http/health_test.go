package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
)

type stubChecker struct {
	err error
}

func (s stubChecker) Check() error { return s.err }

func getJSON(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler()
	router := gin.New()
	handler.Register(router)

	w, body := getJSON(t, router, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("no registered checks", func(t *testing.T) {
		handler := NewHealthHandler()
		router := gin.New()
		handler.Register(router)

		w, body := getJSON(t, router, "/readyz")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "ok", checks["service"])
	})

	t.Run("healthy dependencies", func(t *testing.T) {
		handler := NewHealthHandler()
		handler.RegisterChecker("mongodb", stubChecker{})
		handler.RegisterCircuitBreaker("shiprocket", circuitbreaker.New(circuitbreaker.DefaultConfig()))
		router := gin.New()
		handler.Register(router)

		w, body := getJSON(t, router, "/readyz")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "ok", checks["mongodb"])
		assert.Equal(t, "closed", checks["shiprocket_circuit"])
	})

	t.Run("failing dependency degrades readiness", func(t *testing.T) {
		handler := NewHealthHandler()
		handler.RegisterChecker("mongodb", stubChecker{err: errors.New("no reachable servers")})
		router := gin.New()
		handler.Register(router)

		w, body := getJSON(t, router, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "degraded", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "no reachable servers", checks["mongodb"])
	})

	t.Run("open circuit degrades readiness", func(t *testing.T) {
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 1,
			SuccessThreshold: 1,
			CoolDown:         time.Minute,
			Name:             "shiprocket",
		})
		_ = cb.Execute(func() error { return errors.New("upstream down") })
		require.Equal(t, circuitbreaker.StateOpen, cb.State())

		handler := NewHealthHandler()
		handler.RegisterCircuitBreaker("shiprocket", cb)
		router := gin.New()
		handler.Register(router)

		w, body := getJSON(t, router, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "open", checks["shiprocket_circuit"])
	})
}
