package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

func TestHTTPStore_LoadTeams(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/data/teams.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id": 1, "name": "Lynx", "division": "Hockey Experts", "points": 10}]`))
		case "/data/teams_season.json":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	s, err := NewHTTPStore(server.URL+"/data/", HTTPOptions{}, logger)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	teams, err := s.LoadTeams(context.Background(), true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Lynx" || teams[0].ID != "1" {
		t.Errorf("Unexpected teams %+v", teams)
	}

	season, err := s.LoadTeams(context.Background(), false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(season) != 0 {
		t.Errorf("Expected empty season, got %d teams", len(season))
	}
	if hits.Load() != 2 {
		t.Errorf("Expected 2 requests without cache, got %d", hits.Load())
	}
}

func TestHTTPStore_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	logger, hook := test.NewNullLogger()
	s, _ := NewHTTPStore(server.URL, HTTPOptions{}, logger)

	_, err := s.LoadTeams(context.Background(), true)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", httpErr.StatusCode)
	}
	if httpErr.URL != server.URL+"/teams.json" {
		t.Errorf("Unexpected url %s", httpErr.URL)
	}
	if len(hook.Entries) == 0 {
		t.Error("Expected failure to be logged")
	}
}

func TestHTTPStore_Cache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Lynx"}]`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	s, _ := NewHTTPStore(server.URL, HTTPOptions{CacheTTL: time.Minute}, logger)
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	first, _ := s.LoadTeams(ctx, true)
	first[0].Name = "changed"
	second, _ := s.LoadTeams(ctx, true)
	if hits.Load() != 1 {
		t.Errorf("Expected cached second load, got %d requests", hits.Load())
	}
	if second[0].Name != "Lynx" {
		t.Error("Expected cache to hand out copies")
	}

	now = now.Add(2 * time.Minute)
	_, _ = s.LoadTeams(ctx, true)
	if hits.Load() != 2 {
		t.Errorf("Expected refetch after ttl, got %d requests", hits.Load())
	}

	s.Invalidate()
	_, _ = s.LoadTeams(ctx, true)
	if hits.Load() != 3 {
		t.Errorf("Expected refetch after invalidate, got %d requests", hits.Load())
	}
}

func TestHTTPStore_ReadOnly(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s, _ := NewHTTPStore("http://example.invalid", HTTPOptions{}, logger)
	if err := s.ReplaceTeams(context.Background(), "all", nil); err == nil {
		t.Error("Expected replace to fail")
	}
	if _, err := NewHTTPStore(" ", HTTPOptions{}, logger); err == nil {
		t.Error("Expected error for empty url")
	}
}
