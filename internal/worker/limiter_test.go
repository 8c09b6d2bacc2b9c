package worker

import (
	"context"
	"testing"
)

func TestNewLimiter(t *testing.T) {
	if l := NewLimiter(10, 5); l.burst != 5 {
		t.Errorf("expected burst 5, got %d", l.burst)
	}
	if l := NewLimiter(10, -1); l.burst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.burst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "http://other.example.org"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com/cpr/part07"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of 1 is spent for this host now.
	if limiter.Allow(url) {
		t.Error("expected token exhausted for same host")
	}

	// Another host has its own bucket.
	if !limiter.Allow("http://other.example.org") {
		t.Error("expected fresh bucket for other host")
	}
}

func TestHostOf(t *testing.T) {
	host, err := hostOf("http://example.com/foo")
	if err != nil {
		t.Fatalf("hostOf failed: %v", err)
	}
	if host != "example.com" {
		t.Errorf("expected example.com, got %s", host)
	}

	if _, err := hostOf("::invalid"); err == nil {
		t.Error("expected error for invalid URL")
	}
}
