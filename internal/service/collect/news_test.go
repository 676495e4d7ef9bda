package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"georisk/internal/domain/risk"
)

func TestNewsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("api key header: %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "Shimla" {
			t.Errorf("query: %q", q.Get("q"))
		}
		if q.Get("language") != "en" || q.Get("sortBy") != "relevancy" {
			t.Errorf("params: %v", q)
		}
		if q.Get("pageSize") != "40" {
			t.Errorf("page size: %q", q.Get("pageSize"))
		}
		fmt.Fprint(w, `{"status":"ok","articles":[
			{"title":"Flood warning issued","description":"Heavy rain expected","publishedAt":"2026-08-28T10:00:00Z"},
			{"title":"Highway reopened","description":"","publishedAt":"2026-08-27T08:30:00Z"}
		]}`)
	}))
	defer srv.Close()

	c := NewNewsCollector("secret", 5*time.Second)
	c.baseURL = srv.URL

	items, err := c.Fetch(context.Background(), "Shimla", 40, 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Source != risk.SourceNews {
		t.Errorf("source: %s", items[0].Source)
	}
	if items[0].Text != "Flood warning issued. Heavy rain expected" {
		t.Errorf("text: %q", items[0].Text)
	}
	if items[0].Timestamp.IsZero() {
		t.Error("timestamp not parsed")
	}
}

func TestNewsFetchClampsPageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageSize"); got != "100" {
			t.Errorf("page size: %q, want 100", got)
		}
		fmt.Fprint(w, `{"status":"ok","articles":[]}`)
	}))
	defer srv.Close()

	c := NewNewsCollector("secret", 5*time.Second)
	c.baseURL = srv.URL

	if _, err := c.Fetch(context.Background(), "Shimla", 500, 5); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestNewsFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"apiKeyInvalid"}`)
	}))
	defer srv.Close()

	c := NewNewsCollector("bad", 5*time.Second)
	c.baseURL = srv.URL

	if _, err := c.Fetch(context.Background(), "Shimla", 40, 5); err == nil {
		t.Error("expected an error for a non-ok API status")
	}
}

func TestNewsFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewNewsCollector("bad", 5*time.Second)
	c.baseURL = srv.URL

	if _, err := c.Fetch(context.Background(), "Shimla", 40, 5); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
