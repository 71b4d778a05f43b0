package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerNextRun(t *testing.T) {
	s := NewScheduler(nil, 9, 30)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the slot runs today",
			now:  time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "after the slot runs tomorrow",
			now:  time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "exactly at the slot runs tomorrow",
			now:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "one second before still runs today",
			now:  time.Date(2025, 3, 10, 9, 29, 59, 0, time.UTC),
			want: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.nextRun(tt.now)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(tt.now), "the next run is always in the future")
		})
	}
}

func TestSchedulerStartStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	runner := newTestRunner(t, cfg)
	s := NewScheduler(runner, 3, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
