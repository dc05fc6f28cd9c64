package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/internal/httpx"
	"github.com/vzahanych/meteopipe/pkg/telemetry"
)

func newOpenMeteo(t *testing.T, baseURL string) *OpenMeteoResolver {
	t.Helper()
	cfg := config.GeocodingConfig{BaseURL: baseURL, Language: "en", Count: 5}
	client := httpx.New("open-meteo-geocoding-test", httpx.Config{Timeout: 5 * time.Second})
	return NewOpenMeteoResolver(cfg, client, zaptest.NewLogger(t), &telemetry.Telemetry{})
}

func TestOpenMeteoResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("name"); got != "Berlin" {
			t.Errorf("Expected name Berlin, got %q", got)
		}
		if got := q.Get("count"); got != "5" {
			t.Errorf("Expected count 5, got %q", got)
		}
		if got := q.Get("language"); got != "en" {
			t.Errorf("Expected language en, got %q", got)
		}
		w.Write([]byte(`{"results": [
			{"latitude": 52.52437, "longitude": 13.41053, "name": "Berlin", "country": "Germany"},
			{"latitude": 44.46873, "longitude": -71.18508, "name": "Berlin", "country": "United States"}
		]}`))
	}))
	defer srv.Close()

	resolver := newOpenMeteo(t, srv.URL)

	loc, err := resolver.Resolve(context.Background(), NewLocation("Berlin", "Germany"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if loc.Latitude != 52.52437 || loc.Longitude != 13.41053 {
		t.Errorf("Expected first candidate, got (%v, %v)", loc.Latitude, loc.Longitude)
	}
}

func TestOpenMeteoResolveNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	resolver := newOpenMeteo(t, srv.URL)

	_, err := resolver.Resolve(context.Background(), NewLocation("Nowhere", ""))
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Expected ErrNoCandidates, got %v", err)
	}
}

func TestOpenMeteoResolveAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "secret" {
			t.Errorf("Expected apikey to be forwarded, got %q", got)
		}
		w.Write([]byte(`{"results": [{"latitude": 1, "longitude": 2}]}`))
	}))
	defer srv.Close()

	cfg := config.GeocodingConfig{BaseURL: srv.URL, Language: "en", Count: 5, APIKey: "secret"}
	client := httpx.New("open-meteo-geocoding-test", httpx.Config{Timeout: 5 * time.Second})
	resolver := NewOpenMeteoResolver(cfg, client, zaptest.NewLogger(t), &telemetry.Telemetry{})

	if _, err := resolver.Resolve(context.Background(), NewLocation("Berlin", "")); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
}
