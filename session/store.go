package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"faq-agent/config"
)

// Clock abstracts time so idle-sweep behavior is testable with a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Store is the session-store abstraction the engine depends on, instead
// of a global mutable map. GetOrCreate also opportunistically runs the
// idle sweep, so memory stays bounded by concurrently-active users
// without a dedicated timer.
type Store interface {
	GetOrCreate(userID int64) *Context
	Touch(userID int64)
	Sweep() int
}

// MemoryStore keeps sessions in process memory. Sessions are not
// required to survive a restart; durable records belong to the external
// logging collaborators.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[int64]*Context
	capacity  int
	idleLimit time.Duration
	interval  time.Duration
	lastSweep time.Time
	clock     Clock
	logger    *zap.Logger
}

// NewMemoryStore builds a store from config. A nil clock selects the
// system clock.
func NewMemoryStore(cfg *config.Config, clock Clock, logger *zap.Logger) *MemoryStore {
	if clock == nil {
		clock = systemClock{}
	}
	return &MemoryStore{
		sessions:  make(map[int64]*Context),
		capacity:  cfg.HistoryLength,
		idleLimit: cfg.SessionIdleLimit,
		interval:  cfg.SweepInterval,
		lastSweep: clock.Now(),
		clock:     clock,
		logger:    logger,
	}
}

// GetOrCreate returns the user's session, creating it lazily on first
// contact, and refreshes its last-activity timestamp.
func (s *MemoryStore) GetOrCreate(userID int64) *Context {
	now := s.clock.Now()

	s.mu.Lock()
	ctx, ok := s.sessions[userID]
	if !ok {
		ctx = newContext(s.capacity, now)
		s.sessions[userID] = ctx
	}
	due := s.interval <= 0 || now.Sub(s.lastSweep) >= s.interval
	if due {
		s.lastSweep = now
	}
	s.mu.Unlock()

	ctx.touch(now)
	if due {
		s.Sweep()
	}
	return ctx
}

// Touch refreshes the user's last-activity timestamp without creating a
// session.
func (s *MemoryStore) Touch(userID int64) {
	s.mu.Lock()
	ctx, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		ctx.touch(s.clock.Now())
	}
}

// Sweep deletes every session idle for longer than the configured limit
// and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	var stale []int64
	for userID, ctx := range s.sessions {
		if now.Sub(ctx.LastActivity()) > s.idleLimit {
			stale = append(stale, userID)
		}
	}
	for _, userID := range stale {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if len(stale) > 0 && s.logger != nil {
		s.logger.Debug("Swept idle sessions",
			zap.Int("removed", len(stale)),
			zap.Duration("idle_limit", s.idleLimit))
	}
	return len(stale)
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
