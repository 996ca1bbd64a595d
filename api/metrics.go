package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// RouteMetrics aggregates request counts and latency per method+path
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"-"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// AvgTime returns the mean request duration for the route
func (rm *RouteMetrics) AvgTime() time.Duration {
	if rm.Count == 0 {
		return 0
	}
	return rm.TotalTime / time.Duration(rm.Count)
}

type metricsRegistry struct {
	mu     sync.Mutex
	routes map[string]*RouteMetrics
}

var registry = &metricsRegistry{routes: make(map[string]*RouteMetrics)}

func (m *metricsRegistry) record(method, path string, status int, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := method + " " + path
	rm, ok := m.routes[key]
	if !ok {
		rm = &RouteMetrics{Method: method, Path: path, MinTime: took}
		m.routes[key] = rm
	}
	rm.Count++
	rm.TotalTime += took
	if took < rm.MinTime || rm.Count == 1 {
		rm.MinTime = took
	}
	if took > rm.MaxTime {
		rm.MaxTime = took
	}
	if status >= 400 {
		rm.ErrorCount++
	}
	rm.LastRequest = time.Now()
}

// SnapshotMetrics returns the per-route metrics sorted by request count,
// busiest first.
func SnapshotMetrics() []*RouteMetrics {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	out := make([]*RouteMetrics, 0, len(registry.routes))
	for _, rm := range registry.routes {
		cp := *rm
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

// statusRecorder wraps http.ResponseWriter to capture status code
// It implements http.Hijacker to support WebSocket upgrades
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker to support WebSocket upgrades
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := sr.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

// MetricsMiddleware records request counts and latency per route
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sr, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		registry.record(r.Method, path, sr.status, time.Since(start))
	})
}

// MetricsHandler serves a JSON snapshot of per-route request counters
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := SnapshotMetrics()
	out := make([]map[string]interface{}, 0, len(snapshot))
	for _, rm := range snapshot {
		out = append(out, map[string]interface{}{
			"method":      rm.Method,
			"path":        rm.Path,
			"count":       rm.Count,
			"errorCount":  rm.ErrorCount,
			"avgTimeMs":   rm.AvgTime().Milliseconds(),
			"minTimeMs":   rm.MinTime.Milliseconds(),
			"maxTimeMs":   rm.MaxTime.Milliseconds(),
			"lastRequest": rm.LastRequest,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"routes": out})
}
