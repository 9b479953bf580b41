package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"mvgen/internal/domain"
	"mvgen/internal/generator"
)

const (
	defaultIdleTTL       = 30 * time.Minute
	defaultSweepInterval = time.Minute
)

// Store keeps generator sessions in memory, keyed by a random UUID. Nothing is
// persisted; sessions disappear with the process or after idling past the TTL.
type Store struct {
	clock         clockwork.Clock
	logger        zerolog.Logger
	idleTTL       time.Duration
	sweepInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*generator.Controller
}

// Config controls session eviction.
type Config struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

func NewStore(cfg Config, clock clockwork.Clock, logger zerolog.Logger) *Store {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	return &Store{
		clock:         clock,
		logger:        logger,
		idleTTL:       cfg.IdleTTL,
		sweepInterval: cfg.SweepInterval,
		sessions:      make(map[string]*generator.Controller),
	}
}

// Create starts a new idle session.
func (s *Store) Create() *generator.Controller {
	id := uuid.NewString()
	c := generator.NewController(id,
		generator.WithClock(s.clock),
		generator.WithLogger(s.logger),
	)

	s.mu.Lock()
	s.sessions[id] = c
	s.mu.Unlock()

	s.logger.Debug().Str("session_id", id).Msg("session created")
	return c
}

// Get returns the session with the given id or domain.ErrSessionNotFound.
func (s *Store) Get(id string) (*generator.Controller, error) {
	s.mu.RLock()
	c, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return c, nil
}

// Delete removes and closes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	c, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	c.Close()
	s.logger.Debug().Str("session_id", id).Msg("session deleted")
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run evicts idle sessions until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.Sweep()
		}
	}
}

// Sweep closes every session idle for longer than the TTL and returns how
// many were evicted.
func (s *Store) Sweep() int {
	cutoff := s.clock.Now().Add(-s.idleTTL)

	s.mu.Lock()
	var expired []*generator.Controller
	for id, c := range s.sessions {
		if c.LastActive().Before(cutoff) {
			expired = append(expired, c)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	if len(expired) > 0 {
		s.logger.Info().Int("evicted", len(expired)).Msg("idle sessions evicted")
	}
	return len(expired)
}
