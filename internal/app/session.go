package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"quiz-widget/internal/domain"
)

// State is one of StartState, InProgressState or ResultState.
type State interface {
	Screen() domain.Screen
	isState()
}

// StartState is the landing screen before a quiz begins.
type StartState struct{}

// InProgressState carries the fields that only exist while answering.
type InProgressState struct {
	Index     int
	Selected  string // empty means nothing selected
	Score     int
	StartedAt time.Time
}

// ResultState is the frozen outcome of a completed quiz.
type ResultState struct {
	Score             int
	Total             int
	StartedAt         time.Time
	EndedAt           time.Time
	TimeTakenSeconds  int
	Bonus             int
	TotalScore        int
	Percentage        int
	NewHighScore      bool
	PreviousHighScore int
}

func (StartState) Screen() domain.Screen      { return domain.ScreenStart }
func (InProgressState) Screen() domain.Screen { return domain.ScreenInProgress }
func (ResultState) Screen() domain.Screen     { return domain.ScreenResult }

func (StartState) isState()      {}
func (InProgressState) isState() {}
func (ResultState) isState()     {}

// Snapshot is a read-only copy of the session handed to renderers.
type Snapshot struct {
	ID       string
	State    State
	Answered []bool
	// Now is the display clock: the start time or the last tick, never used for scoring.
	Now time.Time
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now; tests use it for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithTickInterval changes the display timer period.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithTickObserver registers a callback run on the timer goroutine for every tick.
// The callback must not block indefinitely.
func WithTickObserver(fn func(Tick)) Option {
	return func(s *Session) { s.onTick = fn }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID labels the session in logs and snapshots.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is the quiz state machine: Start -> InProgress -> Result -> Start.
type Session struct {
	id           string
	questions    domain.QuestionSet
	highScores   *HighScores
	now          func() time.Time
	tickInterval time.Duration
	onTick       func(Tick)
	logger       *zap.Logger

	mu       sync.Mutex
	state    State
	answered []bool
	lastTick time.Time
	timer    *displayTimer
}

// NewSession validates the question set and returns a session on the Start screen.
func NewSession(questions domain.QuestionSet, highScores *HighScores, opts ...Option) (*Session, error) {
	if err := questions.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		questions:    questions.Clone(),
		highScores:   highScores,
		now:          time.Now,
		tickInterval: DefaultTickInterval,
		logger:       zap.NewNop(),
		state:        StartState{},
		answered:     make([]bool, len(questions)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Questions returns the session's question set. Callers must not modify it.
func (s *Session) Questions() domain.QuestionSet {
	return s.questions
}

// ID returns the session label.
func (s *Session) ID() string {
	return s.id
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.id,
		State:    s.state,
		Answered: append([]bool(nil), s.answered...),
		Now:      s.lastTick,
	}
}

// Screen reports which screen is showing.
func (s *Session) Screen() domain.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Screen()
}

// Start begins the quiz and the display timer.
func (s *Session) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.(StartState); !ok {
		return transitionError("start", s.state)
	}
	now := s.now()
	s.state = InProgressState{Index: 0, StartedAt: now}
	s.lastTick = now
	s.timer.Stop()
	s.timer = startDisplayTimer(s.tickInterval, func(time.Time) { s.tick() })
	s.logger.Debug("quiz started", zap.String("session", s.id), zap.Int("questions", len(s.questions)))
	return nil
}

// SelectOption records the current choice without advancing; the last call wins.
func (s *Session) SelectOption(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(InProgressState)
	if !ok {
		return transitionError("select", s.state)
	}
	if !s.questions[st.Index].HasOption(option) {
		return fmt.Errorf("select %q: %w", option, domain.ErrUnknownOption)
	}
	st.Selected = option
	s.state = st
	return nil
}

// Advance scores the current selection and moves to the next question or the result.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.(InProgressState)
	if !ok {
		return transitionError("advance", s.state)
	}
	if st.Selected == "" {
		return domain.ErrNoSelection
	}

	s.answered[st.Index] = true
	if s.questions[st.Index].IsCorrect(st.Selected) {
		st.Score++
	}
	st.Selected = ""

	if st.Index+1 < len(s.questions) {
		st.Index++
		s.state = st
		return nil
	}

	s.timer.Stop()
	s.timer = nil
	s.state = s.finishLocked(ctx, st, s.now())
	return nil
}

// Restart discards the finished session and returns to the Start screen.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.(ResultState); !ok {
		return transitionError("restart", s.state)
	}
	s.timer.Stop()
	s.timer = nil
	s.state = StartState{}
	s.answered = make([]bool, len(s.questions))
	s.lastTick = time.Time{}
	s.logger.Debug("quiz restarted", zap.String("session", s.id))
	return nil
}

// Close stops the display timer; the session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Stop()
	s.timer = nil
}

func (s *Session) finishLocked(ctx context.Context, st InProgressState, end time.Time) ResultState {
	taken := TimeTakenSeconds(st.StartedAt, end)
	bonus := Bonus(st.Score, taken)
	total := TotalScore(st.Score, bonus)

	result := ResultState{
		Score:            st.Score,
		Total:            len(s.questions),
		StartedAt:        st.StartedAt,
		EndedAt:          end,
		TimeTakenSeconds: taken,
		Bonus:            bonus,
		TotalScore:       total,
		Percentage:       Percentage(st.Score, len(s.questions)),
	}
	if s.highScores != nil {
		result.NewHighScore, result.PreviousHighScore = s.highScores.Record(ctx, total)
	}
	s.logger.Info("quiz completed",
		zap.String("session", s.id),
		zap.Int("score", result.Score),
		zap.Int("bonus", result.Bonus),
		zap.Int("totalScore", result.TotalScore),
		zap.Int("seconds", result.TimeTakenSeconds),
		zap.Bool("newHighScore", result.NewHighScore))
	return result
}

func (s *Session) tick() {
	s.mu.Lock()
	st, ok := s.state.(InProgressState)
	if !ok {
		s.mu.Unlock()
		return
	}
	now := s.now()
	s.lastTick = now
	observer := s.onTick
	s.mu.Unlock()

	if observer != nil {
		elapsed := ElapsedDisplaySeconds(st.StartedAt, now)
		observer(Tick{ElapsedSeconds: elapsed, Elapsed: FormatClock(elapsed), At: now})
	}
}

// timerDone exposes the running timer's exit channel to tests; nil when none runs.
func (s *Session) timerDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return nil
	}
	return s.timer.Done()
}

func transitionError(intent string, state State) error {
	return fmt.Errorf("%s on %s screen: %w", intent, state.Screen(), domain.ErrInvalidTransition)
}
