package jitter

import (
	"testing"
	"time"
)

func TestDurationWithinBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		if d < base || d > base+base/2 {
			t.Fatalf("duration %v out of range [%v, %v]", d, base, base+base/2)
		}
	}
}

func TestExponentialBackoffCapped(t *testing.T) {
	base := time.Second
	max := 4 * time.Second

	// без джиттера проверяем чистую экспоненту
	if got := ExponentialBackoff(base, max, 0, 0); got != time.Second {
		t.Fatalf("attempt 0: got %v, want 1s", got)
	}
	if got := ExponentialBackoff(base, max, 2, 0); got != 4*time.Second {
		t.Fatalf("attempt 2: got %v, want 4s", got)
	}
	if got := ExponentialBackoff(base, max, 10, 0); got != max {
		t.Fatalf("attempt 10: got %v, want cap %v", got, max)
	}
}
