package retrieve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veritas-checks/veritas/internal/model"
)

func TestFetcher_FetchSetsHeaders(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<html><body>page</body></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), 5*time.Second)
	body, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotUA != "veritas-test/1.0" {
		t.Errorf("User-Agent not set: %q", gotUA)
	}
	if !strings.Contains(body, "page") {
		t.Errorf("Body not returned: %q", body)
	}
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), 5*time.Second)
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Expected an error for a non-2xx status")
	}
}

func TestFetcher_BodySizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 5000))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 1000
	fetcher := NewFetcher(cfg, 5*time.Second)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(body) != 1000 {
		t.Errorf("Body not capped: %d bytes", len(body))
	}
}

func TestFetcher_RedirectCap(t *testing.T) {
	mux := http.NewServeMux()
	for i := 0; i < 6; i++ {
		from, to := fmt.Sprintf("/hop%d", i), fmt.Sprintf("/hop%d", i+1)
		mux.HandleFunc(from, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, to, http.StatusFound)
		})
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), 5*time.Second)
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/hop0"); err == nil {
		t.Error("Expected an error after exceeding the redirect cap")
	}
}

func TestFetcher_RespectsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /blocked/\n")
	})
	mux.HandleFunc("/blocked/page", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "should never be served")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.CheckRobots = true
	fetcher := NewFetcher(cfg, 5*time.Second)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/blocked/page"); err == nil {
		t.Error("Expected an error for a robots-disallowed URL")
	}
}

func TestFetcher_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	fetcher := NewFetcher(model.HTTPConfig{
		UserAgent:     "veritas-test/1.0",
		MaxBodyBytes:  1 << 20,
		RatePerDomain: 100,
	}, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fetcher.Fetch(ctx, server.URL); err == nil {
		t.Error("Expected an error under a cancelled context")
	}
}
