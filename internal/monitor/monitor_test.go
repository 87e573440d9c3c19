package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCounter(t *testing.T) {
	var c Counter
	if c.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", c.Get())
	}
	c.Inc()
	c.Inc()
	if c.Get() != 2 {
		t.Errorf("Expected value 2, got %d", c.Get())
	}
}

func TestTimer(t *testing.T) {
	var timer Timer
	if timer.Min() != 0 || timer.Max() != 0 || timer.Avg() != 0 {
		t.Error("Expected zero durations before the first measurement")
	}

	timer.Record(30 * time.Millisecond)
	timer.Record(10 * time.Millisecond)
	timer.Record(20 * time.Millisecond)

	if timer.Count() != 3 {
		t.Errorf("Expected count 3, got %d", timer.Count())
	}
	if timer.Min() != 10*time.Millisecond {
		t.Errorf("Expected min 10ms, got %v", timer.Min())
	}
	if timer.Max() != 30*time.Millisecond {
		t.Errorf("Expected max 30ms, got %v", timer.Max())
	}
	if timer.Avg() != 20*time.Millisecond {
		t.Errorf("Expected avg 20ms, got %v", timer.Avg())
	}
}

func TestTimerZeroDuration(t *testing.T) {
	var timer Timer
	timer.Record(5 * time.Millisecond)
	timer.Record(0)
	if timer.Min() != 0 {
		t.Errorf("Expected min 0, got %v", timer.Min())
	}
	if timer.Count() != 2 {
		t.Errorf("Expected count 2, got %d", timer.Count())
	}
}

func TestRoute(t *testing.T) {
	tests := map[string]string{
		"/community":        "/community",
		"/community/7":      "/community/:id",
		"/community/7/like": "/community/:id/like",
		"/mypage/profile":   "/mypage/profile",
		"/":                 "/",
	}
	for in, want := range tests {
		if got := Route(in); got != want {
			t.Errorf("Route(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequestsTrack(t *testing.T) {
	r := NewRequests()
	r.Track("GET", "/community/1", 10*time.Millisecond, nil)
	r.Track("GET", "/community/2", 30*time.Millisecond, errors.New("boom"))
	r.Track("POST", "/auth/login", 5*time.Millisecond, nil)

	stats := r.Snapshot()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d", len(stats))
	}

	get := stats[0]
	if get.Endpoint != "GET /community/:id" {
		t.Errorf("Expected GET /community/:id first, got %s", get.Endpoint)
	}
	if get.Calls != 2 || get.Errors != 1 {
		t.Errorf("Expected 2 calls and 1 error, got %d and %d", get.Calls, get.Errors)
	}
	if get.ErrorRate() != 0.5 {
		t.Errorf("Expected error rate 0.5, got %f", get.ErrorRate())
	}
	if get.Avg != 20*time.Millisecond {
		t.Errorf("Expected avg 20ms, got %v", get.Avg)
	}
}

func TestRequestsConcurrent(t *testing.T) {
	r := NewRequests()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Track("GET", "/pills/search", time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()

	stats := r.Snapshot()
	if len(stats) != 1 || stats[0].Calls != 800 {
		t.Errorf("Expected 800 calls on one endpoint, got %+v", stats)
	}
}

func TestNilRequests(t *testing.T) {
	var r *Requests
	r.Track("GET", "/community", time.Millisecond, nil)
	if r.Snapshot() != nil {
		t.Error("Expected nil snapshot from nil registry")
	}
	if ErrorRate(1, 0) != 0 {
		t.Error("Expected zero error rate without calls")
	}
}
