package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "https://www.bbc.com/news"); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if time.Since(start) > 200*time.Millisecond {
		t.Error("Requests within the burst should not block")
	}
}

func TestLimiter_PerDomainIsolation(t *testing.T) {
	// Exhausting one domain's burst must not slow another domain
	limiter := NewLimiter(0.1, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://slow.example.com/a"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "https://other.example.org/b"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if time.Since(start) > 200*time.Millisecond {
		t.Error("A fresh domain should have its own rate budget")
	}
}

func TestLimiter_CancelledContext(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	ctx := context.Background()

	// Drain the single burst token
	if err := limiter.Wait(ctx, "https://www.bbc.com/a"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled, "https://www.bbc.com/b"); err == nil {
		t.Error("Expected an error when waiting under a cancelled context")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)
	if err := limiter.Wait(context.Background(), "http://bad\x00url"); err == nil {
		t.Error("Expected an error for an unparseable URL")
	}
}
