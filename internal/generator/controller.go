package generator

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"mvgen/internal/domain"
)

// Controller owns the state of a single generator session. All mutations go
// through its methods; the rendering layer reads copies via Snapshot.
type Controller struct {
	clock   clockwork.Clock
	logger  zerolog.Logger
	onReady func(domain.SessionState)

	mu         sync.Mutex
	state      domain.SessionState
	timer      clockwork.Timer
	lastActive time.Time
	closed     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for the generation delay.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger. The session id is attached to every entry.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithOnReady registers a hook called once per completed generation with the
// resulting state. It runs outside the controller lock.
func WithOnReady(fn func(domain.SessionState)) Option {
	return func(c *Controller) {
		c.onReady = fn
	}
}

// NewController creates an idle session with the given id.
func NewController(id string, opts ...Option) *Controller {
	c := &Controller{
		clock:  clockwork.NewRealClock(),
		logger: zerolog.Nop(),
		state: domain.SessionState{
			ID:     id,
			Status: domain.StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("session_id", id).Logger()
	c.lastActive = c.clock.Now()
	return c
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.state.ID
}

// SubmitAudio validates a candidate file and, when accepted, makes it the
// session's audio. A new upload invalidates a finished result.
func (c *Controller) SubmitAudio(candidate *domain.RawFile) (domain.UploadedAudio, error) {
	if err := ValidateAudio(candidate); err != nil {
		c.logger.Debug().Err(err).Msg("audio rejected")
		return domain.UploadedAudio{}, err
	}

	audio := domain.UploadedAudio{
		Name: candidate.Name,
		Type: candidate.Type,
		Size: candidate.Size,
	}

	c.mu.Lock()
	c.touch()
	c.state.UploadedAudio = &audio
	if c.state.Status == domain.StatusReady {
		c.state.Status = domain.StatusIdle
		c.state.ResultReference = nil
	}
	c.mu.Unlock()

	c.logger.Debug().Str("name", audio.Name).Int64("size", audio.Size).Msg("audio accepted")
	return audio, nil
}

// SelectStyle makes style the session's selected style.
func (c *Controller) SelectStyle(style domain.StyleOption) {
	c.mu.Lock()
	c.touch()
	c.state.SelectedStyle = &style
	c.mu.Unlock()

	c.logger.Debug().Str("style", style.Name).Msg("style selected")
}

// SetHovered records which catalog entry is under pointer focus.
func (c *Controller) SetHovered(index int) {
	c.mu.Lock()
	c.touch()
	c.state.HoveredIndex = &index
	c.mu.Unlock()
}

// ClearHovered forgets the hovered entry.
func (c *Controller) ClearHovered() {
	c.mu.Lock()
	c.touch()
	c.state.HoveredIndex = nil
	c.mu.Unlock()
}

// RequestGeneration starts a simulated generation run that completes after
// domain.GenerationDelay. At most one run is outstanding per session.
func (c *Controller) RequestGeneration() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if c.state.UploadedAudio == nil || c.state.SelectedStyle == nil {
		c.logger.Debug().Msg("generation rejected: missing input")
		return domain.ErrMissingInput
	}
	if c.state.Status == domain.StatusGenerating {
		c.logger.Debug().Msg("generation rejected: already in progress")
		return domain.ErrAlreadyInProgress
	}

	c.state.Status = domain.StatusGenerating
	c.state.ResultReference = nil
	c.timer = c.clock.AfterFunc(domain.GenerationDelay, c.complete)

	c.logger.Info().
		Str("style", c.state.SelectedStyle.Name).
		Str("audio", c.state.UploadedAudio.Name).
		Msg("generation started")
	return nil
}

func (c *Controller) complete() {
	c.mu.Lock()
	if c.closed || c.state.Status != domain.StatusGenerating {
		c.mu.Unlock()
		return
	}
	ref := domain.PlaceholderResult
	c.state.Status = domain.StatusReady
	c.state.ResultReference = &ref
	c.timer = nil
	snapshot := c.state.Clone()
	c.mu.Unlock()

	c.logger.Info().Str("result", ref).Msg("generation ready")
	if c.onReady != nil {
		c.onReady(snapshot)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// LastActive reports when the session was last mutated.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Close tears the session down. An outstanding generation never completes.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// touch must be called with mu held.
func (c *Controller) touch() {
	c.lastActive = c.clock.Now()
}
