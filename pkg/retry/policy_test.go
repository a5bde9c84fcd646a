package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jzx17/goresilience/pkg/types"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid defaults",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "zero max attempts",
			config: Config{
				MaxAttempts: 0,
				MaxDelay:    time.Second,
			},
			wantErr: true,
		},
		{
			name: "negative initial delay",
			config: Config{
				MaxAttempts:  3,
				InitialDelay: -time.Second,
				MaxDelay:     time.Second,
			},
			wantErr: true,
		},
		{
			name: "max delay below initial delay",
			config: Config{
				MaxAttempts:  3,
				InitialDelay: 2 * time.Second,
				MaxDelay:     time.Second,
			},
			wantErr: true,
		},
		{
			name: "base not above one",
			config: Config{
				MaxAttempts:     3,
				InitialDelay:    time.Millisecond,
				MaxDelay:        time.Second,
				ExponentialBase: 1.0,
			},
			wantErr: true,
		},
		{
			name: "zero base means default",
			config: Config{
				MaxAttempts:  3,
				InitialDelay: time.Millisecond,
				MaxDelay:     time.Second,
			},
			wantErr: false,
		},
		{
			name: "single attempt no delay",
			config: Config{
				MaxAttempts: 1,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if tt.wantErr && !errors.Is(err, types.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewPolicy_BackoffCurve(t *testing.T) {
	policy, err := NewPolicy(Config{
		MaxAttempts:     10,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        1 * time.Second,
		ExponentialBase: 2,
		Jitter:          false,
	})
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	// delay after failed attempt k+1 is min(initial * base^k, maxDelay)
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second},
		{9, 1 * time.Second},
	}

	for _, tt := range tests {
		got := policy.NextDelay(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestNewPolicy_JitterRange(t *testing.T) {
	policy, err := NewPolicy(Config{
		MaxAttempts:     5,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        10 * time.Second,
		ExponentialBase: 2,
		Jitter:          true,
	})
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	nominal := 400 * time.Millisecond // attempt 3
	for i := 0; i < 200; i++ {
		got := policy.NextDelay(3)
		if got < nominal/2 || got >= nominal {
			t.Fatalf("jittered NextDelay(3) = %v, want in [%v, %v)", got, nominal/2, nominal)
		}
	}
}

func TestNewPolicy_ZeroInitialDelay(t *testing.T) {
	policy, err := NewPolicy(Config{
		MaxAttempts:  3,
		InitialDelay: 0,
		MaxDelay:     0,
		Jitter:       true,
	})
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	// jitter over a zero-length delay still samples zero
	if got := policy.NextDelay(1); got != 0 {
		t.Errorf("NextDelay(1) = %v, want 0", got)
	}
}

func TestNewPolicy_CustomCondition(t *testing.T) {
	sentinel := errors.New("do not retry this")
	policy, err := NewPolicy(Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Second,
		IsRetryable: func(err error) bool {
			return !errors.Is(err, sentinel)
		},
	})
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	if policy.ShouldRetry(sentinel, 1) {
		t.Error("Expected sentinel to be non-retryable")
	}
	if !policy.ShouldRetry(errors.New("other"), 1) {
		t.Error("Expected other errors to be retryable")
	}
}

func TestBaseRetryPolicy_ShouldRetry(t *testing.T) {
	policy := NewBaseRetryPolicy(3, WithRetryCondition(AlwaysRetry))

	if !policy.ShouldRetry(errors.New("boom"), 1) {
		t.Error("Expected retry on attempt 1")
	}
	if !policy.ShouldRetry(errors.New("boom"), 2) {
		t.Error("Expected retry on attempt 2")
	}
	// attempt count is bounded by max attempts, not retries
	if policy.ShouldRetry(errors.New("boom"), 3) {
		t.Error("Expected no retry once max attempts is reached")
	}
}

func TestFixedDelayRetry_NextDelay(t *testing.T) {
	policy := NewFixedDelayRetry(3, 50*time.Millisecond)

	for attempt := 1; attempt <= 3; attempt++ {
		if got := policy.NextDelay(attempt); got != 50*time.Millisecond {
			t.Errorf("NextDelay(%d) = %v, want 50ms", attempt, got)
		}
	}
}

func TestCustomRetry_NextDelay(t *testing.T) {
	policy := NewCustomRetry(5, func(attempt int) time.Duration {
		return time.Duration(attempt) * 10 * time.Millisecond
	})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 10 * time.Millisecond},
		{2, 20 * time.Millisecond},
		{3, 30 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := policy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestDefaultRetryCondition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"operation timeout", types.ErrOperationTimeout, true},
		{"unavailable", types.ErrUnavailable, true},
		{"explicit retryable", types.NewRetryableError(errors.New("flaky")), true},
		{"explicit permanent", types.NewPermanentError(types.ErrOperationTimeout), false},
		{"unknown error", errors.New("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultRetryCondition(tt.err); got != tt.want {
				t.Errorf("DefaultRetryCondition(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type fakeNetError struct {
	timeout   bool
	temporary bool
}

func (e *fakeNetError) Error() string   { return "net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return e.temporary }

func TestTimeoutOrTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("plain"), false},
		{"timeout", &fakeNetError{timeout: true}, true},
		{"temporary", &fakeNetError{temporary: true}, true},
		{"neither", &fakeNetError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeoutOrTemporary(tt.err); got != tt.want {
				t.Errorf("TimeoutOrTemporary(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNeverRetry_DegradesToSingleAttempt(t *testing.T) {
	policy := NewFixedDelayRetry(5, time.Millisecond, WithRetryCondition(NeverRetry))

	if policy.ShouldRetry(errors.New("boom"), 1) {
		t.Error("NeverRetry must reject every error")
	}
}
