package annotate

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at       time.Time
	duration time.Duration
}

// StatsSnapshot is a point-in-time aggregate of annotator latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LatencyStats keeps annotator call latencies within a rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 256),
		window:  window,
	}
}

// Record adds one call duration. Negative durations count as zero.
func (s *LatencyStats) Record(d time.Duration) {
	d = max(d, 0)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(now)
	s.samples = append(s.samples, sample{at: now, duration: d})
}

func (s *LatencyStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	s.expireLocked(now)
	ms := make([]int64, len(s.samples))
	for i, sm := range s.samples {
		ms[i] = sm.duration.Milliseconds()
	}
	s.mu.Unlock()

	if len(ms) == 0 {
		return StatsSnapshot{}
	}
	slices.Sort(ms)
	var sum int64
	for _, v := range ms {
		sum += v
	}
	return StatsSnapshot{
		Count: len(ms),
		MinMs: ms[0],
		MaxMs: ms[len(ms)-1],
		AvgMs: float64(sum) / float64(len(ms)),
		P50Ms: percentile(ms, 50),
		P95Ms: percentile(ms, 95),
		P99Ms: percentile(ms, 99),
	}
}

func (s *LatencyStats) expireLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(rank-float64(lower))
}
