package monitor

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Requests tracks calls per endpoint. A nil *Requests ignores every call,
// so clients can hold one unconditionally.
type Requests struct {
	mu        sync.Mutex
	endpoints map[string]*endpoint
}

type endpoint struct {
	timer  Timer
	errors Counter
}

// EndpointStats is a point-in-time view of one endpoint
type EndpointStats struct {
	Endpoint string        `json:"endpoint"`
	Calls    int64         `json:"calls"`
	Errors   int64         `json:"errors"`
	Min      time.Duration `json:"min"`
	Avg      time.Duration `json:"avg"`
	Max      time.Duration `json:"max"`
}

// ErrorRate returns the failed fraction of calls
func (s EndpointStats) ErrorRate() float64 {
	return ErrorRate(s.Errors, s.Calls)
}

// NewRequests creates an empty registry
func NewRequests() *Requests {
	return &Requests{endpoints: make(map[string]*endpoint)}
}

// Track records one call. Numeric path segments are folded into ":id" so
// per-post requests share one entry.
func (r *Requests) Track(method, path string, took time.Duration, err error) {
	if r == nil {
		return
	}
	key := method + " " + Route(path)

	r.mu.Lock()
	ep, ok := r.endpoints[key]
	if !ok {
		ep = &endpoint{}
		r.endpoints[key] = ep
	}
	r.mu.Unlock()

	ep.timer.Record(took)
	if err != nil {
		ep.errors.Inc()
	}
}

// Snapshot returns the stats sorted by endpoint
func (r *Requests) Snapshot() []EndpointStats {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]EndpointStats, 0, len(r.endpoints))
	for key, ep := range r.endpoints {
		out = append(out, EndpointStats{
			Endpoint: key,
			Calls:    ep.timer.Count(),
			Errors:   ep.errors.Get(),
			Min:      ep.timer.Min(),
			Avg:      ep.timer.Avg(),
			Max:      ep.timer.Max(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out
}

// Route replaces numeric path segments with ":id"
func Route(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
