package ratelimit

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestAllowUntilBurstExhausted(t *testing.T) {
	f := New(rate.Every(time.Hour), 3)

	if !f.Allow("irul") {
		t.Fatal("fresh username must be allowed")
	}
	for i := 0; i < 3; i++ {
		f.Fail("irul")
	}
	if f.Allow("irul") {
		t.Error("username must be blocked after burst failures")
	}
}

func TestFailuresAreScopedPerUsername(t *testing.T) {
	f := New(rate.Every(time.Hour), 2)

	f.Fail("irul")
	f.Fail("irul")

	if f.Allow("irul") {
		t.Error("irul must be blocked")
	}
	if !f.Allow("other") {
		t.Error("other usernames must be unaffected")
	}
}

func TestResetRestoresAllowance(t *testing.T) {
	f := New(rate.Every(time.Hour), 2)

	f.Fail("irul")
	f.Fail("irul")
	if f.Allow("irul") {
		t.Fatal("expected irul blocked before reset")
	}

	f.Reset("irul")
	if !f.Allow("irul") {
		t.Error("reset must clear the window")
	}
}

func TestTokensRefillOverTime(t *testing.T) {
	f := New(rate.Every(10*time.Millisecond), 1)

	f.Fail("irul")
	if f.Allow("irul") {
		t.Fatal("expected irul blocked right after failure")
	}

	time.Sleep(25 * time.Millisecond)
	if !f.Allow("irul") {
		t.Error("token should have refilled")
	}
}

func TestPruneDropsIdleBuckets(t *testing.T) {
	f := New(rate.Every(time.Hour), 2)

	f.Fail("irul")
	f.Fail("other")
	if f.Size() != 2 {
		t.Fatalf("expected 2 tracked usernames, got %d", f.Size())
	}

	// Nothing is idle yet.
	if n := f.Prune(time.Minute); n != 0 {
		t.Errorf("expected no prunes, got %d", n)
	}

	// Everything is idle relative to a zero window.
	if n := f.Prune(0); n != 2 {
		t.Errorf("expected 2 prunes, got %d", n)
	}
	if f.Size() != 0 {
		t.Errorf("expected empty limiter, got %d", f.Size())
	}
	if !f.Allow("irul") {
		t.Error("pruned username must be allowed again")
	}
}
