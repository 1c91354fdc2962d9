package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/chemicals/{cas}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, cas := range []string{"67-64-1", "64-17-5"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/chemicals/"+cas, nil))
	}

	got := testutil.ToFloat64(m.requestTotal.WithLabelValues("api", http.MethodGet, "/v1/chemicals/{cas}", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests under one pattern label, got %v", got)
	}
}

func TestHazardCounters(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	m.RecordExtraction("text_extraction", 3, nil)
	m.RecordExtraction("pdf_extraction", 0, errors.New("boom"))
	m.RecordTranslation("Category 2", true)
	m.RecordTranslation("", false)
	m.ObserveResilience("nats.publish", "retry")

	if v := testutil.ToFloat64(m.extractionsTotal.WithLabelValues("api", "pdf_extraction", "error")); v != 1 {
		t.Fatalf("expected one failed pdf extraction, got %v", v)
	}
	if v := testutil.ToFloat64(m.translationsTotal.WithLabelValues("api", "none", "false")); v != 1 {
		t.Fatalf("expected blank category to be labelled none, got %v", v)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "csr_resilience_outcomes_total") {
		t.Fatalf("expected resilience counter in exposition")
	}
}

func TestWorkerMetrics(t *testing.T) {
	m := NewWorkerMetrics("worker")
	m.StartExtraction()
	m.FinishExtraction(20*time.Millisecond, "source_unavailable")

	if v := testutil.ToFloat64(m.extractTotal.WithLabelValues("worker", "source_unavailable")); v != 1 {
		t.Fatalf("expected one source_unavailable extraction, got %v", v)
	}
	if v := testutil.ToFloat64(m.extractInFlight); v != 0 {
		t.Fatalf("expected in-flight gauge back at 0, got %v", v)
	}
}
