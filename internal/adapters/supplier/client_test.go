package supplier_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stupnd/trippy-sub001/internal/adapters/supplier"
	"github.com/stupnd/trippy-sub001/internal/domain"
)

func searchDates(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start, _ := time.Parse("2006-01-02", "2026-09-10")
	end, _ := time.Parse("2006-01-02", "2026-09-14")
	return start, end
}

func TestClient_SearchFlights_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{
					"id": "fl-1", "airline": "TAP", "price": 480.0, "duration_minutes": 540,
					"departure_time": "08:15", "return_departure_time": "17:30",
					"layovers": []map[string]any{{"airport": "LHR", "dwell_minutes": 75}},
				},
			})
		}
	}))
	defer ts.Close()

	cl, err := supplier.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start, end := searchDates(t)
	got, err := cl.SearchFlights(ctx, "SFO", "LIS", start, end)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != "fl-1" || got[0].Category != domain.CategoryFlight {
		t.Fatalf("unexpected candidates: %+v", got)
	}
	if got[0].Flight.TotalDurationMin() != 615 {
		t.Fatalf("expected dwell included in total, got %d", got[0].Flight.TotalDurationMin())
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_SearchLodging_MapsRecords(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "lg-1", "name": "Alfama Loft", "nightly_price": 130.0, "rating": 4.6, "features": []string{"wifi", "terrace"}},
		})
	}))
	defer ts.Close()

	cl, _ := supplier.New(ts.URL, "test-key", 100)
	start, end := searchDates(t)
	got, err := cl.SearchLodging(context.Background(), "Lisbon", "PT", start, end)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Price != 130 || got[0].Lodging == nil || got[0].Lodging.Rating != 4.6 {
		t.Fatalf("unexpected candidates: %+v", got)
	}
}

func TestClient_SearchFlights_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := supplier.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start, end := searchDates(t)
	if _, err := cl.SearchFlights(ctx, "SFO", "LIS", start, end); !errors.Is(err, supplier.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_SearchFlights_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer ts.Close()

	cl, _ := supplier.New(ts.URL, "test-key", 100)
	start, end := searchDates(t)
	if _, err := cl.SearchFlights(context.Background(), "SFO", "LIS", start, end); !errors.Is(err, domain.ErrUpstreamMalformed) {
		t.Fatalf("expected ErrUpstreamMalformed, got %v", err)
	}
}

func TestClient_RequiresKey(t *testing.T) {
	if _, err := supplier.New("http://example.com", "", 5); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
