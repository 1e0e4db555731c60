package util

import (
	"context"
	"errors"
	"testing"
)

func TestRetry(t *testing.T) {
	attempts := 0
	targetAttempts := 3

	err := Retry(context.Background(), 5, 0, func() error {
		attempts++
		if attempts < targetAttempts {
			return errors.New("transient error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned unexpected error: %v", err)
	}
	if attempts != targetAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, targetAttempts)
	}
}

func TestRetryAllFail(t *testing.T) {
	attempts := 0
	maxAttempts := 3

	err := Retry(context.Background(), maxAttempts, 0, func() error {
		attempts++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("Retry should return error when all attempts fail")
	}
	if attempts != maxAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, maxAttempts)
	}
}

func TestRateLimiterNew(t *testing.T) {
	rl := NewRateLimiter(60)
	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait returned error: %v", err)
	}
}

func TestRateLimiterCancelled(t *testing.T) {
	rl := NewRateLimiter(1) // one token a minute; the second Wait must block
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait on cancelled context = %v, want context.Canceled", err)
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if NewLogger(level) == nil {
			t.Errorf("NewLogger(%q) returned nil", level)
		}
	}
}
