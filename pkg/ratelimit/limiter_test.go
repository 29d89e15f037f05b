package ratelimit

import (
	"testing"
	"time"
)

func TestNoopLimiter(t *testing.T) {
	limiter := NewFixedDelay(0)

	for i := 0; i < 100; i++ {
		if !limiter.Allow() {
			t.Fatal("Expected zero-delay limiter to always allow")
		}
	}

	start := time.Now()
	limiter.Wait()
	if time.Since(start) > 10*time.Millisecond {
		t.Error("Expected zero-delay Wait to return immediately")
	}
}

func TestFixedDelayAllow(t *testing.T) {
	limiter := NewFixedDelay(time.Hour)

	if !limiter.Allow() {
		t.Fatal("Expected first request to be allowed")
	}
	if limiter.Allow() {
		t.Error("Expected second immediate request to be denied")
	}
}

func TestFixedDelayWaitSpacing(t *testing.T) {
	delay := 50 * time.Millisecond
	limiter := NewFixedDelay(delay)

	limiter.Wait() // consume the initial token

	start := time.Now()
	limiter.Wait()
	elapsed := time.Since(start)

	if elapsed < delay-10*time.Millisecond {
		t.Errorf("Expected Wait to enforce at least %s spacing, waited %s", delay, elapsed)
	}
}
