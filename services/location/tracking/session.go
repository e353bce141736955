package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/location"
)

// Option configures a Session
type Option func(*Session)

// WithSampleHook registers a callback run after each sample has been recorded
func WithSampleHook(fn func(sessionID string, sample models.LocationSample)) Option {
	return func(s *Session) {
		s.sampleHook = fn
	}
}

// WithErrorHook registers a callback for provider and store failures
func WithErrorHook(fn func(sessionID string, err error)) Option {
	return func(s *Session) {
		s.errorHook = fn
	}
}

// Session is the Idle/Active tracking state machine of one device. While
// Active every emitted sample becomes LastSample and is appended to history.
type Session struct {
	deviceID string
	provider location.LocationProvider
	history  location.HistoryRepo
	opts     location.WatchOptions

	sampleHook func(sessionID string, sample models.LocationSample)
	errorHook  func(sessionID string, err error)

	mu         sync.Mutex
	state      models.SessionState
	id         string
	generation uint64
	sub        location.Subscription
	lastSub    location.Subscription
	ctx        context.Context
	lastSample *models.LocationSample
	startedAt  time.Time
	lastErr    error
}

// NewSession creates an idle session
func NewSession(
	deviceID string,
	provider location.LocationProvider,
	history location.HistoryRepo,
	opts location.WatchOptions,
	options ...Option,
) *Session {
	s := &Session{
		deviceID: deviceID,
		provider: provider,
		history:  history,
		opts:     opts,
		state:    models.SessionIdle,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Start subscribes to the provider and moves to Active. On failure the
// session stays Idle. Starting an Active session returns ErrSessionActive.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.SessionActive {
		return models.ErrSessionActive
	}

	s.generation++
	gen := s.generation
	// appends must outlive the request that started tracking
	s.ctx = context.WithoutCancel(ctx)

	sub, err := s.provider.WatchPosition(ctx, s.opts,
		func(sample models.LocationSample) { s.handleSample(gen, sample) },
		func(err error) { s.handleError(gen, err) },
	)
	if err != nil {
		s.lastErr = err
		return err
	}

	s.state = models.SessionActive
	s.id = uuid.NewString()
	s.sub = sub
	s.lastSub = sub
	s.startedAt = time.Now().UTC()
	s.lastErr = nil
	return nil
}

// Stop cancels the subscription and moves to Idle. Stopping an Idle session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state != models.SessionActive {
		s.mu.Unlock()
		return
	}
	sub := s.sub
	s.state = models.SessionIdle
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

// Wait blocks until the callbacks of the most recent subscription have
// returned. Call it after Stop, never from a hook.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	sub := s.lastSub
	s.mu.Unlock()

	if sub == nil {
		return nil
	}

	select {
	case <-sub.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) handleSample(gen uint64, sample models.LocationSample) {
	s.mu.Lock()
	if gen != s.generation || s.state != models.SessionActive {
		s.mu.Unlock()
		return
	}
	recorded := sample
	s.lastSample = &recorded
	ctx := s.ctx
	id := s.id
	s.mu.Unlock()

	if err := s.history.Append(ctx, s.deviceID, sample); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		if s.errorHook != nil {
			s.errorHook(id, err)
		}
	}

	if s.sampleHook != nil {
		s.sampleHook(id, sample)
	}
}

func (s *Session) handleError(gen uint64, err error) {
	s.mu.Lock()
	if gen != s.generation || s.state != models.SessionActive {
		s.mu.Unlock()
		return
	}
	id := s.id
	s.state = models.SessionIdle
	s.sub = nil
	s.lastErr = err
	s.mu.Unlock()

	if s.errorHook != nil {
		s.errorHook(id, err)
	}
}

// DeviceID returns the tracked device
func (s *Session) DeviceID() string {
	return s.deviceID
}

// State returns the current state
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastSample returns the most recent recorded sample, or nil
func (s *Session) LastSample() *models.LocationSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastSample == nil {
		return nil
	}
	sample := *s.lastSample
	return &sample
}

// Status returns a snapshot of the session
func (s *Session) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := models.SessionStatus{
		DeviceID:  s.deviceID,
		SessionID: s.id,
		State:     s.state,
	}
	if s.lastSample != nil {
		sample := *s.lastSample
		status.LastSample = &sample
	}
	if s.state == models.SessionActive {
		startedAt := s.startedAt
		status.StartedAt = &startedAt
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}
