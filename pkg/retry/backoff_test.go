package retry

import (
	"testing"
	"time"
)

func TestFixedBackoff(t *testing.T) {
	delay := 100 * time.Millisecond
	backoff := NewFixedBackoff(delay)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, delay},
		{2, delay},
		{3, delay},
		{10, delay},
	}

	for _, tt := range tests {
		got := backoff.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialBackoff(t *testing.T) {
	initialDelay := 100 * time.Millisecond
	backoff := NewExponentialBackoff(initialDelay,
		WithBackoffMultiplier(2.0),
		WithBackoffMaxDelay(1*time.Second))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond},  // Limited by max delay
		{10, 1000 * time.Millisecond}, // Limited by max delay
	}

	for _, tt := range tests {
		got := backoff.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialBackoff_NonIntegerBase(t *testing.T) {
	backoff := NewExponentialBackoff(100*time.Millisecond,
		WithBackoffMultiplier(1.5),
		WithBackoffMaxDelay(10*time.Second))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 150 * time.Millisecond},
		{3, 225 * time.Millisecond},
	}

	for _, tt := range tests {
		got := backoff.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestLinearBackoff(t *testing.T) {
	initialDelay := 100 * time.Millisecond
	increment := 50 * time.Millisecond
	backoff := NewLinearBackoff(initialDelay, increment,
		WithBackoffMaxDelay(500*time.Millisecond))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 150 * time.Millisecond},
		{3, 200 * time.Millisecond},
		{4, 250 * time.Millisecond},
		{5, 300 * time.Millisecond},
		{10, 500 * time.Millisecond}, // Limited by max delay
	}

	for _, tt := range tests {
		got := backoff.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestDampenedJitter_Range(t *testing.T) {
	nominal := 1 * time.Second

	for i := 0; i < 1000; i++ {
		got := DampenedJitter(nominal)
		if got < nominal/2 || got >= nominal {
			t.Fatalf("DampenedJitter(%v) = %v, want in [%v, %v)", nominal, got, nominal/2, nominal)
		}
	}
}

func TestDampenedJitter_NeverLengthens(t *testing.T) {
	// dampening-only jitter: the nominal delay stays the worst case
	for _, nominal := range []time.Duration{time.Millisecond, 100 * time.Millisecond, time.Minute} {
		for i := 0; i < 100; i++ {
			if got := DampenedJitter(nominal); got >= nominal {
				t.Fatalf("DampenedJitter(%v) = %v, must stay below nominal", nominal, got)
			}
		}
	}
}

func TestDampenedJitter_ZeroDelay(t *testing.T) {
	if got := DampenedJitter(0); got != 0 {
		t.Errorf("DampenedJitter(0) = %v, want 0", got)
	}
}

func TestFullJitter_Range(t *testing.T) {
	nominal := 1 * time.Second

	for i := 0; i < 1000; i++ {
		got := FullJitter(nominal)
		if got < 0 || got >= nominal {
			t.Fatalf("FullJitter(%v) = %v, want in [0, %v)", nominal, got, nominal)
		}
	}

	if got := FullJitter(0); got != 0 {
		t.Errorf("FullJitter(0) = %v, want 0", got)
	}
}

func TestEqualJitter_Range(t *testing.T) {
	nominal := 1 * time.Second

	for i := 0; i < 1000; i++ {
		got := EqualJitter(nominal)
		if got < nominal/2 || got >= nominal {
			t.Fatalf("EqualJitter(%v) = %v, want in [%v, %v)", nominal, got, nominal/2, nominal)
		}
	}
}

func TestEqualJitter_TinyDelay(t *testing.T) {
	// 1ns has no jitterable half; the delay passes through unchanged
	if got := EqualJitter(1); got != 1 {
		t.Errorf("EqualJitter(1) = %v, want 1ns", got)
	}

	if got := EqualJitter(0); got != 0 {
		t.Errorf("EqualJitter(0) = %v, want 0", got)
	}

	for i := 0; i < 100; i++ {
		if got := EqualJitter(2); got < 1 || got >= 2 {
			t.Fatalf("EqualJitter(2) = %v, want in [1ns, 2ns)", got)
		}
	}
}

func TestBackoffWithJitterOption(t *testing.T) {
	backoff := NewExponentialBackoff(100*time.Millisecond,
		WithBackoffMaxDelay(10*time.Second),
		WithBackoffJitter(DampenedJitter))

	// nominal delay for attempt 3 is 400ms
	nominal := 400 * time.Millisecond
	for i := 0; i < 100; i++ {
		got := backoff.NextDelay(3)
		if got < nominal/2 || got >= nominal {
			t.Fatalf("jittered NextDelay(3) = %v, want in [%v, %v)", got, nominal/2, nominal)
		}
	}
}

func TestBackoffReset_Stateless(t *testing.T) {
	backoff := NewExponentialBackoff(100 * time.Millisecond)

	before := backoff.NextDelay(3)
	backoff.Reset()
	after := backoff.NextDelay(3)

	if before != after {
		t.Errorf("Reset changed stateless backoff: %v != %v", before, after)
	}
}
