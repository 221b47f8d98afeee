package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shard-legends/loadout-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecovery_ReturnsJSONError(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recovery())
	router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal_error","message":"Internal Server Error"}`, rec.Body.String())
}

func TestLoggingAndMetrics_PassThrough(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Logging())
	router.Use(Metrics())
	router.Get("/sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRoutePattern(t *testing.T) {
	var pattern string
	router := chi.NewRouter()
	router.Get("/sessions/{sessionId}/totals", func(w http.ResponseWriter, r *http.Request) {
		pattern = routePattern(r)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions/123/totals", nil))
	assert.Equal(t, "/sessions/{sessionId}/totals", pattern)

	assert.Equal(t, "unmatched", routePattern(httptest.NewRequest(http.MethodGet, "/nowhere", nil)))
}

func TestLogging_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.Replace(zap.New(core))()

	router := chi.NewRouter()
	router.Use(Logging())
	router.Get("/status/{code}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "code") {
		case "404":
			w.WriteHeader(http.StatusNotFound)
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	})

	for _, code := range []string{"200", "404", "500"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status/"+code, nil))
	}

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
}
