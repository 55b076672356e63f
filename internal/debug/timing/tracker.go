package timing

import (
	"context"
	"sync"
	"time"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// StageTiming is one completed measurement.
type StageTiming struct {
	Operation string
	Duration  time.Duration
}

// Tracker records operation durations in completion order.
type Tracker struct {
	timings []StageTiming
	mu      sync.RWMutex
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	return context.WithValue(context.Background(), timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: tt.now(),
	})
}

// EndTiming records and returns the elapsed time for a context produced by
// StartTiming. Foreign contexts are ignored.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := tt.now().Sub(timingInfo.StartTime)

	tt.mu.Lock()
	tt.timings = append(tt.timings, StageTiming{Operation: timingInfo.Operation, Duration: duration})
	tt.mu.Unlock()

	return duration
}

func (tt *Tracker) Timings() []StageTiming {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make([]StageTiming, len(tt.timings))
	copy(result, tt.timings)
	return result
}

func (tt *Tracker) Total() time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	var total time.Duration
	for _, t := range tt.timings {
		total += t.Duration
	}
	return total
}
