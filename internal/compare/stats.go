package compare

import (
	"sort"
	"sync"
	"time"

	"github.com/bradykim7/pricecompare/internal/fetcher"
)

// SourceStats tracks statistics for individual sources
type SourceStats struct {
	Source          string    `json:"source"`
	Attempts        int       `json:"attempts"`
	Successes       int       `json:"successes"`
	LastRun         time.Time `json:"last_run"`
	LastRunDuration string    `json:"last_run_duration"`
	LastPrice       float64   `json:"last_price,omitempty"`
	LastReason      string    `json:"last_reason,omitempty"`
	LastError       string    `json:"last_error,omitempty"`
	SuccessRate     float64   `json:"success_rate"` // 0-1
}

// Stats accumulates per-source statistics across comparisons
type Stats struct {
	mu      sync.RWMutex
	sources map[string]SourceStats
}

// NewStats creates an empty tracker
func NewStats() *Stats {
	return &Stats{sources: make(map[string]SourceStats)}
}

// Record folds one fetch outcome into the source's statistics
func (s *Stats) Record(out fetcher.Outcome, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sources[out.Source]
	st.Source = out.Source
	st.LastRun = at
	st.LastRunDuration = out.Duration.String()

	result := 0.0
	if out.OK() {
		result = 1
		st.Successes++
		st.LastPrice = out.Record.Price
		st.LastReason = ""
		st.LastError = ""
	} else {
		st.LastReason = string(out.Reason)
		if out.Err != nil {
			st.LastError = out.Err.Error()
		}
	}

	if st.Attempts == 0 {
		st.SuccessRate = result
	} else {
		// Weight previous success rate at 90%, new result at 10%
		st.SuccessRate = st.SuccessRate*0.9 + result*0.1
	}
	st.Attempts++

	s.sources[out.Source] = st
}

// Snapshot returns a copy of the statistics sorted by source
func (s *Stats) Snapshot() []SourceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SourceStats, 0, len(s.sources))
	for _, st := range s.sources {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
