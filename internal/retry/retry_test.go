package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), "test", 3, time.Millisecond, discardLogger(), func(context.Context) error {
		calls++
		if calls < 3 {
			return &model.HTTPError{StatusCode: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnNonTransientError(t *testing.T) {
	authErr := &model.HTTPError{StatusCode: 401}
	calls := 0
	err := Do(context.Background(), "test", 3, time.Millisecond, discardLogger(), func(context.Context) error {
		calls++
		return authErr
	})
	if !errors.Is(err, authErr) {
		t.Fatalf("Do() error = %v, want %v", err, authErr)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries on 401)", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	transient := errors.New("connection reset")
	calls := 0
	err := Do(context.Background(), "test", 2, time.Millisecond, discardLogger(), func(context.Context) error {
		calls++
		return transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("Do() error = %v, want %v", err, transient)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, "test", 5, time.Hour, discardLogger(), func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffDelayHonorsRetryAfter(t *testing.T) {
	err := &model.HTTPError{StatusCode: 429, RetryAfter: 7 * time.Second}
	if got := backoffDelay(time.Second, 1, err); got != 7*time.Second {
		t.Errorf("backoffDelay = %v, want 7s from Retry-After", got)
	}
}

func TestBackoffDelayGrows(t *testing.T) {
	base := 100 * time.Millisecond
	plain := errors.New("transient")

	first := backoffDelay(base, 1, plain)
	if first < 70*time.Millisecond || first > 130*time.Millisecond {
		t.Errorf("attempt 1 delay %v outside jitter band", first)
	}

	third := backoffDelay(base, 3, plain)
	if third < 280*time.Millisecond || third > 520*time.Millisecond {
		t.Errorf("attempt 3 delay %v outside jitter band", third)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &model.HTTPError{StatusCode: 429}, true},
		{"server error", &model.HTTPError{StatusCode: 502}, true},
		{"unauthorized", &model.HTTPError{StatusCode: 401}, false},
		{"forbidden", &model.HTTPError{StatusCode: 403}, false},
		{"not found", &model.HTTPError{StatusCode: 404}, false},
		{"network error", errors.New("dial tcp: timeout"), true},
		{"cancelled", context.Canceled, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
