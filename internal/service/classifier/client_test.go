package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("path: %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header: %q", got)
		}
		var payload struct {
			Texts []string `json:"texts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload.Texts) != 2 {
			t.Errorf("texts: %v", payload.Texts)
		}
		fmt.Fprint(w, `[{"label":"LABEL_0","score":0.93},{"label":"LABEL_1","score":0.81}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	predictions, err := c.Classify(context.Background(), []string{"road flooded", "lovely weather"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(predictions) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(predictions))
	}
	if predictions[0].Label != "LABEL_0" || predictions[0].Score != 0.93 {
		t.Errorf("first prediction: %+v", predictions[0])
	}
}

func TestClassifyNoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected auth header: %q", got)
		}
		fmt.Fprint(w, `[{"label":"neutral","score":0.5}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.Classify(context.Background(), []string{"text"}); err != nil {
		t.Fatalf("Classify: %v", err)
	}
}

func TestClassifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.Classify(context.Background(), []string{"text"}); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestClassifyLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"label":"LABEL_0","score":0.9}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.Classify(context.Background(), []string{"one", "two"}); err == nil {
		t.Error("expected an error when prediction count does not match batch size")
	}
}
