package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveAndScrape(t *testing.T) {
	t.Parallel()

	m := NewHTTPMetrics()
	m.Observe("GET", "/api/v1/products", 200, 25*time.Millisecond)
	m.Observe("GET", "/api/v1/products", 200, 30*time.Millisecond)
	m.Observe("POST", "", 500, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",route="/api/v1/products",status="200"} 2`) {
		t.Fatalf("expected counted requests in scrape output:\n%s", body)
	}
	if !strings.Contains(body, `route="unknown"`) {
		t.Fatalf("expected empty route to normalize to unknown:\n%s", body)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	t.Parallel()

	var m *HTTPMetrics
	m.Observe("GET", "/x", 200, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}
