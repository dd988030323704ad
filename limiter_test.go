package cleanblog

import (
	"testing"
	"time"
)

func TestWriteLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewWriteLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first write to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second write to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third write to be blocked")
	}
}

func TestWriteLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewWriteLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first write to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second write to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected write after window to be allowed")
	}
}

func TestWriteLimiterIsPerIP(t *testing.T) {
	limiter := NewWriteLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestWriteLimiterDisabled(t *testing.T) {
	limiter := NewWriteLimiter(0, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if !limiter.Allow("203.0.113.40") {
			t.Fatalf("write %d blocked with limiting disabled", i)
		}
	}
}
