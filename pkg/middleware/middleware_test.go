package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func resetGlobalMetrics() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestPrometheusCountsRequests(t *testing.T) {
	resetGlobalMetrics()
	reg := prometheus.NewRegistry()

	handler := Prometheus(WithRegistry(reg))(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<root/>"))
		}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/people", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d", rec.Code)
		}
	}

	body := scrape(t, reg)
	if !strings.Contains(body, `xmlbuilder_renders_total{path="/docs/people",status="200"} 3`) {
		t.Errorf("render counter missing or wrong:\n%s", body)
	}
	if !strings.Contains(body, "xmlbuilder_render_duration_seconds") {
		t.Errorf("duration histogram missing:\n%s", body)
	}
}

func TestPrometheusCountsErrors(t *testing.T) {
	resetGlobalMetrics()
	reg := prometheus.NewRegistry()

	handler := Prometheus(WithRegistry(reg))(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))

	body := scrape(t, reg)
	if !strings.Contains(body, `xmlbuilder_render_errors_total{path="/bad"} 1`) {
		t.Errorf("error counter missing:\n%s", body)
	}
	if !strings.Contains(body, `xmlbuilder_renders_total{path="/bad",status="500"} 1`) {
		t.Errorf("render counter should record the 500:\n%s", body)
	}
}

func TestPrometheusCustomNamespace(t *testing.T) {
	resetGlobalMetrics()
	reg := prometheus.NewRegistry()

	handler := Prometheus(WithRegistry(reg), WithNamespace("myapp"))(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(scrape(t, reg), "myapp_renders_total") {
		t.Error("namespace option should rename metrics")
	}
}

func TestRecordPreviewClient(t *testing.T) {
	resetGlobalMetrics()
	reg := prometheus.NewRegistry()

	_ = Prometheus(WithRegistry(reg))
	RecordPreviewClient(1)
	RecordPreviewClient(1)
	RecordPreviewClient(-1)

	if !strings.Contains(scrape(t, reg), "xmlbuilder_preview_clients 1") {
		t.Error("preview gauge should track connect/disconnect")
	}
}

func TestRecordPreviewClientBeforeInit(t *testing.T) {
	resetGlobalMetrics()
	// Must not panic when the middleware has never been constructed.
	RecordPreviewClient(1)
}

func TestTracingPassesThrough(t *testing.T) {
	called := false
	handler := Tracing()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if SpanFromRequest(r) == nil {
			t.Error("span should be available from the request context")
		}
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/x", nil))

	if !called {
		t.Fatal("handler was not invoked")
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status should pass through, got %d", rec.Code)
	}
}

func TestTracingFilter(t *testing.T) {
	handler := Tracing(WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("filtered request should still be served, got %d", rec.Code)
	}
}

func TestStatusRecorderDefaults(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.Write([]byte("abc"))
	if rec.status != http.StatusOK {
		t.Errorf("implicit status should stay 200, got %d", rec.status)
	}
	if rec.bytes != 3 {
		t.Errorf("got %d bytes, want 3", rec.bytes)
	}
}
