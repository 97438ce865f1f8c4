package agent

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries:   maxRetries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	got, err := RetryWithPolicy(context.Background(), fastPolicy(3),
		func(context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("503 service unavailable")
			}
			return "ok", nil
		},
		ClassifyProviderError, nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != "ok" || attempts != 3 {
		t.Errorf("got %q after %d attempts", got, attempts)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	_, err := RetryWithPolicy(context.Background(), fastPolicy(3),
		func(context.Context) (string, error) {
			attempts++
			return "", errors.New("invalid api key")
		},
		ClassifyProviderError, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("non-retryable error attempted %d times", attempts)
	}
	if IsRetryExhausted(err) {
		t.Error("non-retryable failure misreported as exhaustion")
	}
}

func TestRetryExhaustion(t *testing.T) {
	attempts := 0
	_, err := RetryWithPolicy(context.Background(), fastPolicy(2),
		func(context.Context) (string, error) {
			attempts++
			return "", errors.New("connection refused")
		},
		ClassifyProviderError, nil)
	if !IsRetryExhausted(err) {
		t.Fatalf("err = %v, want RetryExhaustedError", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (initial + 2 retries)", attempts)
	}
}

func TestRetryMaybeClassIsCapped(t *testing.T) {
	attempts := 0
	_, err := RetryWithPolicy(context.Background(), fastPolicy(10),
		func(context.Context) (string, error) {
			attempts++
			return "", errors.New("context deadline exceeded")
		},
		ClassifyProviderError, nil)
	if !IsRetryExhausted(err) {
		t.Fatalf("err = %v, want RetryExhaustedError", err)
	}
	if attempts != 3 {
		t.Errorf("maybe-class attempts = %d, want 3", attempts)
	}
}

func TestRetryHonorsRetryAfter(t *testing.T) {
	err := &ProviderError{
		Err:        errors.New("429 too many requests"),
		Class:      RetryClassRetryable,
		RetryAfter: "2",
	}
	d := calculateDelay(fastPolicy(3), 0, err)
	if d > 5*time.Millisecond {
		// Retry-After above MaxDelay is capped at MaxDelay.
		t.Errorf("delay = %v, want capped at MaxDelay", d)
	}
}

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		err  string
		want RetryClass
	}{
		{"429 too many requests", RetryClassRetryable},
		{"rate limit exceeded", RetryClassRetryable},
		{"502 bad gateway", RetryClassRetryable},
		{"connection reset by peer", RetryClassRetryable},
		{"context deadline exceeded", RetryClassMaybe},
		{"401 unauthorized", RetryClassNonRetryable},
		{"invalid api key", RetryClassNonRetryable},
		{"quota exceeded for this billing period", RetryClassNonRetryable},
		{"something inexplicable", RetryClassNonRetryable},
	}
	for _, tt := range tests {
		if got := ClassifyProviderError(errors.New(tt.err)); got != tt.want {
			t.Errorf("ClassifyProviderError(%q) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestExtractRetryAfterSeconds(t *testing.T) {
	err := &ProviderError{Err: errors.New("429"), RetryAfter: "7"}
	if got := ExtractRetryAfter(err); got != 7*time.Second {
		t.Errorf("got %v, want 7s", got)
	}
}
