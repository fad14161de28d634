package ratelimiter

import (
	"testing"
	"time"
)

func TestLimiter_AllowWithinLimit(t *testing.T) {
	t.Parallel()

	l := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("attempt over the limit should be denied")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, time.Minute)

	if !l.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("a different key must not share the first key's window")
	}
	if l.Allow("10.0.0.1") {
		t.Error("first key should now be denied")
	}
}

func TestLimiter_WindowResets(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, 10*time.Millisecond)

	if !l.Allow("10.0.0.1") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("second attempt inside the window should be denied")
	}

	time.Sleep(15 * time.Millisecond)

	if !l.Allow("10.0.0.1") {
		t.Error("attempt after the window elapsed should be allowed")
	}
}
