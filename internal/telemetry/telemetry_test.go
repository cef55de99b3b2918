package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/selector"
)

func decision(src selector.Source) selector.Decision {
	return selector.Decision{
		QuestionNumber: 12,
		SlotID:         12,
		TypeHint:       "INTJ",
		Candidate:      quiz.Question{ID: "q12-system"},
		Chosen:         quiz.Question{ID: "q12"},
		Source:         src,
		MaxPriority:    2.0,
		UrgentAxes:     []quiz.Axis{quiz.AxisThinking},
	}
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := LogObserver(zap.New(core))

	obs.ObserveDecision(decision(selector.SourceVariant))
	obs.ObserveDecision(decision(selector.SourceBalance))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "question selected", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "axis balance override", entries[1].Message)

	ctx := entries[1].ContextMap()
	assert.Equal(t, "q12-system", ctx["candidate"])
	assert.Equal(t, "q12", ctx["chosen"])
	assert.Equal(t, []any{"thinking"}, ctx["urgent_axes"])
}

func TestObserversFanOut(t *testing.T) {
	var a, b int
	obs := Observers(
		selector.ObserverFunc(func(selector.Decision) { a++ }),
		nil,
		selector.ObserverFunc(func(selector.Decision) { b++ }),
	)
	obs.ObserveDecision(decision(selector.SourceBase))
	obs.ObserveDecision(decision(selector.SourceBase))
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestMetricsObserveDecision(t *testing.T) {
	m := NewMetrics(false)
	m.ObserveDecision(decision(selector.SourceVariant))
	m.ObserveDecision(decision(selector.SourceBalance))
	m.ObserveDecision(decision(selector.SourceBalance))
	m.ObserveResult("IGYS")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("variant")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Selections.WithLabelValues("balance")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Overrides))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Results.WithLabelValues("IGYS")))
}

func TestMetricsMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(false)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/7", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/ping/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "shindan_http_requests_total"))
}
