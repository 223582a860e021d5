package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store accumulates per-process request counters. In-memory on purpose: the
// /metrics endpoint is an operational convenience, not a durable time series.
type Store struct {
	mu             sync.Mutex
	startTime      time.Time
	requestCount   int64
	errorCount     int64
	durationSum    time.Duration
	endpointCounts map[string]int64
}

func NewStore() *Store {
	return &Store{
		startTime:      time.Now(),
		endpointCounts: make(map[string]int64),
	}
}

// Record registers one completed request. Status >= 400 counts as an error.
func (s *Store) Record(endpoint string, status int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requestCount++
	s.durationSum += duration
	if status >= 400 {
		s.errorCount++
	}
	s.endpointCounts[endpoint]++
}

type EndpointCount struct {
	Endpoint string `json:"endpoint"`
	Count    int64  `json:"count"`
}

type Snapshot struct {
	UptimeSeconds     float64         `json:"uptime_seconds"`
	UptimeFormatted   string          `json:"uptime_formatted"`
	TotalRequests     int64           `json:"total_requests"`
	TotalErrors       int64           `json:"total_errors"`
	ErrorRatePercent  float64         `json:"error_rate"`
	AvgResponseTimeMS float64         `json:"average_response_time_ms"`
	RequestsPerMinute float64         `json:"requests_per_minute"`
	TopEndpoints      []EndpointCount `json:"top_endpoints"`
	Timestamp         time.Time       `json:"timestamp"`
}

// Snapshot returns current values. Top endpoints are limited to ten.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	uptime := time.Since(s.startTime)

	snap := Snapshot{
		UptimeSeconds:   round2(uptime.Seconds()),
		UptimeFormatted: formatUptime(uptime),
		TotalRequests:   s.requestCount,
		TotalErrors:     s.errorCount,
		Timestamp:       time.Now().UTC(),
	}

	if s.requestCount > 0 {
		snap.ErrorRatePercent = round2(float64(s.errorCount) / float64(s.requestCount) * 100)
		snap.AvgResponseTimeMS = round2(s.durationSum.Seconds() * 1000 / float64(s.requestCount))
	}
	minutes := uptime.Minutes()
	if minutes < 1 {
		minutes = 1
	}
	snap.RequestsPerMinute = round2(float64(s.requestCount) / minutes)

	for endpoint, count := range s.endpointCounts {
		snap.TopEndpoints = append(snap.TopEndpoints, EndpointCount{Endpoint: endpoint, Count: count})
	}
	sort.Slice(snap.TopEndpoints, func(i, j int) bool {
		if snap.TopEndpoints[i].Count != snap.TopEndpoints[j].Count {
			return snap.TopEndpoints[i].Count > snap.TopEndpoints[j].Count
		}
		return snap.TopEndpoints[i].Endpoint < snap.TopEndpoints[j].Endpoint
	})
	if len(snap.TopEndpoints) > 10 {
		snap.TopEndpoints = snap.TopEndpoints[:10]
	}

	return snap
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func formatUptime(d time.Duration) string {
	secs := int64(d.Seconds())
	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
