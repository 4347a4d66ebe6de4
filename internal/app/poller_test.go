package app

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestStartPoller_DisabledWhenIntervalZero(t *testing.T) {
	called := make(chan struct{}, 1)
	StartPoller(context.Background(), 0, func(context.Context) error {
		called <- struct{}{}
		return nil
	}, nil, nil)

	select {
	case <-called:
		t.Fatal("refresh should not run when polling is disabled")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStartPoller_RefreshesAndNotifies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var refreshes atomic.Int32
	notified := make(chan struct{}, 8)
	StartPoller(ctx, 10*time.Millisecond, func(context.Context) error {
		if refreshes.Add(1) == 1 {
			return errors.New("backend down")
		}
		return nil
	}, func() { notified <- struct{}{} }, log.New(io.Discard))

	for i := 0; i < 2; i++ {
		select {
		case <-notified:
		case <-time.After(time.Second):
			t.Fatalf("notify %d never arrived", i+1)
		}
	}
	if got := refreshes.Load(); got < 2 {
		t.Fatalf("refreshes = %d, want at least 2", got)
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var refreshes atomic.Int32
	StartPoller(ctx, 5*time.Millisecond, func(context.Context) error {
		refreshes.Add(1)
		return nil
	}, nil, log.New(io.Discard))

	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	stopped := refreshes.Load()
	time.Sleep(30 * time.Millisecond)
	if got := refreshes.Load(); got != stopped {
		t.Fatalf("refresh kept running after cancel: %d -> %d", stopped, got)
	}
}
