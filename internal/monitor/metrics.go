// Package monitor keeps lightweight request metrics for the API client.
package monitor

import (
	"math"
	"sync/atomic"
	"time"
)

// Counter is a thread-safe counter
type Counter struct {
	value atomic.Int64
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	c.value.Add(1)
}

// Get returns the current value
func (c *Counter) Get() int64 {
	return c.value.Load()
}

// Timer accumulates durations. The zero value is ready to use.
type Timer struct {
	count atomic.Int64
	total atomic.Int64
	// min is stored offset by one so the zero value means "unset"
	min atomic.Int64
	max atomic.Int64
}

// Record adds one measurement
func (t *Timer) Record(d time.Duration) {
	nanos := d.Nanoseconds()
	t.count.Add(1)
	t.total.Add(nanos)

	for {
		cur := t.min.Load()
		if cur != 0 && nanos+1 >= cur {
			break
		}
		if t.min.CompareAndSwap(cur, nanos+1) {
			break
		}
	}
	for {
		cur := t.max.Load()
		if nanos <= cur {
			break
		}
		if t.max.CompareAndSwap(cur, nanos) {
			break
		}
	}
}

// Count returns the number of measurements
func (t *Timer) Count() int64 {
	return t.count.Load()
}

// Min returns the shortest measurement, or 0 before the first one
func (t *Timer) Min() time.Duration {
	if v := t.min.Load(); v > 0 {
		return time.Duration(v - 1)
	}
	return 0
}

// Max returns the longest measurement
func (t *Timer) Max() time.Duration {
	return time.Duration(t.max.Load())
}

// Avg returns the mean measurement
func (t *Timer) Avg() time.Duration {
	n := t.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(t.total.Load() / n)
}

// ErrorRate returns errors as a fraction of calls
func ErrorRate(errors, calls int64) float64 {
	if calls == 0 {
		return 0
	}
	return math.Min(1, float64(errors)/float64(calls))
}
