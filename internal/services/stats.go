package services

import (
	"sync"
	"time"

	"sdloop/types"

	"github.com/google/uuid"
)

// Stats is written by the runner and read by the status API.
type Stats struct {
	mu sync.RWMutex

	runID       string
	running     bool
	cycles      int64
	jobs        int64
	images      int64
	lastSavedAt time.Time
	lastError   string
}

func NewStats() *Stats {
	return &Stats{runID: uuid.NewString()}
}

func (s *Stats) RunID() string {
	return s.runID
}

func (s *Stats) setRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

func (s *Stats) jobSaved(images int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs++
	s.images += int64(images)
	s.lastSavedAt = at
}

func (s *Stats) cycleDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles++
}

func (s *Stats) failed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}

func (s *Stats) Snapshot() types.StatsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := types.StatsResponse{
		RunID:     s.runID,
		Running:   s.running,
		Cycles:    s.cycles,
		Jobs:      s.jobs,
		Images:    s.images,
		LastError: s.lastError,
	}
	if !s.lastSavedAt.IsZero() {
		out.LastSavedAt = s.lastSavedAt.Unix()
	}
	return out
}
