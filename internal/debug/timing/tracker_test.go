package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsInCompletionOrder(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tt := NewTracker()
	tt.now = func() time.Time { return clock }

	load := tt.StartTiming("load")
	clock = clock.Add(30 * time.Millisecond)
	extract := tt.StartTiming("extract")
	clock = clock.Add(5 * time.Millisecond)

	assert.Equal(t, 5*time.Millisecond, tt.EndTiming(extract))
	assert.Equal(t, 35*time.Millisecond, tt.EndTiming(load))

	got := tt.Timings()
	require.Len(t, got, 2)
	assert.Equal(t, "extract", got[0].Operation)
	assert.Equal(t, "load", got[1].Operation)
	assert.Equal(t, 40*time.Millisecond, tt.Total())
}

func TestEndTimingIgnoresForeignContext(t *testing.T) {
	tt := NewTracker()

	assert.Zero(t, tt.EndTiming(context.Background()))
	assert.Empty(t, tt.Timings())
}
