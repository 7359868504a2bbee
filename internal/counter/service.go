package counter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/busybox/internal/eventlog"
	"github.com/roach88/busybox/internal/history"
	"github.com/roach88/busybox/internal/motion"
	"github.com/roach88/busybox/internal/prefs"
)

// Service holds the counter and detector state for one screen.
type Service struct {
	store    prefs.Store
	clock    Clock
	logger   *slog.Logger
	detector *motion.Detector
	render   history.Options
	session  string

	value          int
	historyVisible bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to stamp press events.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the logger. The service adds a "session" attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithDetector sets the shake detector tuning.
func WithDetector(cfg motion.Config) Option {
	return func(s *Service) { s.detector = motion.NewDetector(cfg) }
}

// WithHistoryOptions sets the labels and date formatter for History.
func WithHistoryOptions(o history.Options) Option {
	return func(s *Service) { s.render = o }
}

// WithSession sets the session identifier attached to log records.
func WithSession(id string) Option {
	return func(s *Service) { s.session = id }
}

// New loads the counter from store and returns a ready Service.
// A store read failure is returned as is: the service cannot run without it.
func New(ctx context.Context, store prefs.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:    store,
		clock:    SystemClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		detector: motion.NewDetector(motion.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.session == "" {
		s.session = uuid.Must(uuid.NewV7()).String()
	}
	s.logger = s.logger.With("session", s.session)

	value, err := store.GetInt(ctx, KeyCounter, 0)
	if err != nil {
		return nil, fmt.Errorf("load counter: %w", err)
	}
	s.value = value
	s.logger.Debug("counter loaded", "value", value)

	return s, nil
}

// Session returns the session identifier.
func (s *Service) Session() string {
	return s.session
}

// Value returns the current counter value.
func (s *Service) Value() int {
	return s.value
}

// Increment adds one to the counter, commits it, and appends a press event
// stamped with the current time. Returns the new value.
func (s *Service) Increment(ctx context.Context) (int, error) {
	next := s.value + 1
	at := s.clock.Now().UnixMilli()

	if err := s.store.SetInt(ctx, KeyCounter, next); err != nil {
		return s.value, fmt.Errorf("increment: %w", err)
	}
	s.value = next

	if err := s.store.AppendString(ctx, KeyPressLog, eventlog.EncodePress(at, next)); err != nil {
		return s.value, fmt.Errorf("increment: append press: %w", err)
	}

	s.logger.Debug("press recorded", "value", next, "at", at)
	return next, nil
}

// Reset sets the counter to zero. The press and shake logs are not touched.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.SetInt(ctx, KeyCounter, 0); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.value = 0
	s.logger.Debug("counter reset")
	return nil
}

// RecordShake appends a shake event at ts.
func (s *Service) RecordShake(ctx context.Context, ts int64) error {
	if err := s.store.AppendString(ctx, KeyShakeLog, eventlog.EncodeShake(ts)); err != nil {
		return fmt.Errorf("record shake: %w", err)
	}
	return nil
}

// HandleSensor feeds a sensor callback to the detector and records a shake
// when one is detected. Reports whether a shake was recorded.
func (s *Service) HandleSensor(ctx context.Context, sensorType int, values []float32, at int64) (bool, error) {
	shake, emitted := s.detector.HandleSensor(sensorType, values, at)
	if !emitted {
		return false, nil
	}
	s.logger.Debug("shake detected", "speed", shake.Speed, "at", shake.At)
	if err := s.RecordShake(ctx, shake.At); err != nil {
		return false, err
	}
	return true, nil
}

// Observe feeds an accelerometer sample to the detector.
func (s *Service) Observe(ctx context.Context, sample motion.Sample) (bool, error) {
	return s.HandleSensor(ctx, motion.SensorAccelerometer, []float32{sample.X, sample.Y, sample.Z}, sample.At)
}

// History reads both logs and projects them into display rows. Skipped
// tokens are logged as warnings and returned in the projection.
func (s *Service) History(ctx context.Context) (history.Projection, error) {
	pressRaw, err := s.store.GetString(ctx, KeyPressLog, "")
	if err != nil {
		return history.Projection{}, fmt.Errorf("history: %w", err)
	}
	shakeRaw, err := s.store.GetString(ctx, KeyShakeLog, "")
	if err != nil {
		return history.Projection{}, fmt.Errorf("history: %w", err)
	}

	p := history.Project(pressRaw, shakeRaw, s.render)
	for _, issue := range p.Issues {
		s.logger.Warn("skipping malformed history entry",
			"log", issue.Kind.String(),
			"index", issue.Index,
			"token", issue.Token,
			"error", issue.Err,
		)
	}
	return p, nil
}

// HistoryVisible reports whether the history list is shown.
func (s *Service) HistoryVisible() bool {
	return s.historyVisible
}

// ToggleHistory flips history visibility and returns the new state.
func (s *Service) ToggleHistory() bool {
	s.historyVisible = !s.historyVisible
	return s.historyVisible
}
