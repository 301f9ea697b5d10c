package retrieve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("veritas-test/1.0", 5*time.Second)
	ctx := context.Background()

	if !checker.IsAllowed(ctx, server.URL+"/news/story") {
		t.Error("Public path should be allowed")
	}
	if checker.IsAllowed(ctx, server.URL+"/private/page") {
		t.Error("Disallowed path should be blocked")
	}
}

func TestRobotsChecker_MissingRobotsAllowsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("veritas-test/1.0", 5*time.Second)
	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("A missing robots.txt should allow everything")
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable from here on

	checker := NewRobotsChecker("veritas-test/1.0", time.Second)
	if !checker.IsAllowed(context.Background(), server.URL+"/page") {
		t.Error("An unreachable robots.txt should allow by default")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var robotsFetches int64
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&robotsFetches, 1)
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("veritas-test/1.0", 5*time.Second)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		checker.IsAllowed(ctx, fmt.Sprintf("%s/page-%d", server.URL, i))
	}

	if atomic.LoadInt64(&robotsFetches) != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", robotsFetches)
	}
}
