package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/infra/memory"
)

func TestAdvanceWalksEveryQuestionThenShowsResult(t *testing.T) {
	ctx := context.Background()
	session, _, _ := newTestSession(t)
	questions := session.Questions()

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer session.Close()

	for i, q := range questions {
		st, ok := session.Snapshot().State.(app.InProgressState)
		if !ok {
			t.Fatalf("advance %d: expected in-progress, got %s", i, session.Screen())
		}
		if st.Index != i {
			t.Fatalf("expected index %d, got %d", i, st.Index)
		}
		if err := session.SelectOption(q.Options[0]); err != nil {
			t.Fatalf("select: %v", err)
		}
		if err := session.Advance(ctx); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	if session.Screen() != domain.ScreenResult {
		t.Fatalf("expected result screen, got %s", session.Screen())
	}
	for i, answered := range session.Snapshot().Answered {
		if !answered {
			t.Fatalf("expected question %d marked answered", i)
		}
	}
}

func TestScoreCountsExactMatchesOnly(t *testing.T) {
	session, _, _ := newTestSession(t)
	questions := session.Questions()

	mustStart(t, session)
	defer session.Close()

	// Right, wrong, right, wrong, right.
	for i, q := range questions {
		choice := q.Answer
		if i%2 == 1 {
			choice = wrongOption(q)
		}
		answer(t, session, choice)
	}

	result := session.Snapshot().State.(app.ResultState)
	if result.Score != 3 {
		t.Fatalf("expected score 3, got %d", result.Score)
	}
	if result.Percentage != 60 {
		t.Fatalf("expected 60%%, got %d", result.Percentage)
	}
}

func TestLastSelectionWins(t *testing.T) {
	session, _, _ := newTestSession(t)
	mustStart(t, session)
	defer session.Close()

	q := session.Questions()[0]
	if err := session.SelectOption(q.Answer); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.SelectOption(wrongOption(q)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.Advance(context.Background()); err != nil {
		t.Fatalf("advance: %v", err)
	}

	st := session.Snapshot().State.(app.InProgressState)
	if st.Score != 0 {
		t.Fatalf("expected the later wrong selection to count, score=%d", st.Score)
	}
	if st.Selected != "" {
		t.Fatalf("expected selection cleared after advance, got %q", st.Selected)
	}
}

func TestAllCorrectInTenSeconds(t *testing.T) {
	session, clock, store := newTestSession(t)
	mustStart(t, session)
	defer session.Close()

	for _, q := range session.Questions() {
		clock.Advance(2 * time.Second)
		answer(t, session, q.Answer)
	}

	result := session.Snapshot().State.(app.ResultState)
	if result.Score != 5 || result.TimeTakenSeconds != 10 || result.Bonus != 500 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.TotalScore != 505 || result.Percentage != 100 {
		t.Fatalf("expected total 505 at 100%%, got %d at %d%%", result.TotalScore, result.Percentage)
	}
	if !result.NewHighScore {
		t.Fatalf("expected a new high score against an empty store")
	}
	if value, _, _ := store.Get(context.Background(), app.HighScoreKey); value != "505" {
		t.Fatalf("expected stored 505, got %q", value)
	}
}

func TestLowerTotalLeavesStoredHighScore(t *testing.T) {
	session, clock, store := newTestSession(t)
	if err := store.Set(context.Background(), app.HighScoreKey, "600"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mustStart(t, session)
	defer session.Close()
	for _, q := range session.Questions() {
		clock.Advance(2 * time.Second)
		answer(t, session, q.Answer)
	}

	result := session.Snapshot().State.(app.ResultState)
	if result.TotalScore != 505 {
		t.Fatalf("expected total 505, got %d", result.TotalScore)
	}
	if result.NewHighScore || result.PreviousHighScore != 600 {
		t.Fatalf("expected no new high score against 600, got %+v", result)
	}
	if store.Count(app.HighScoreKey) != 1 {
		t.Fatalf("expected store untouched after seeding, writes=%d", store.Count(app.HighScoreKey))
	}
}

func TestCorruptHighScoreIsReplaced(t *testing.T) {
	for _, raw := range []string{"not-a-number", "", "-3", "{}"} {
		session, _, store := newTestSession(t)
		_ = store.Set(context.Background(), app.HighScoreKey, raw)

		mustStart(t, session)
		// Zero elapsed time and no correct answers: total 0 still counts as the first score.
		for _, q := range session.Questions() {
			answer(t, session, wrongOption(q))
		}
		session.Close()

		result := session.Snapshot().State.(app.ResultState)
		if result.TotalScore != 0 || !result.NewHighScore {
			t.Fatalf("raw %q: expected new high score of 0, got %+v", raw, result)
		}
		if value, _, _ := store.Get(context.Background(), app.HighScoreKey); value != "0" {
			t.Fatalf("raw %q: expected stored 0, got %q", raw, value)
		}
	}
}

func TestRestartResetsEverythingButTheStore(t *testing.T) {
	ctx := context.Background()
	session, clock, store := newTestSession(t)
	mustStart(t, session)
	for _, q := range session.Questions() {
		clock.Advance(time.Second)
		answer(t, session, q.Answer)
	}
	writes := store.Count(app.HighScoreKey)
	stored, _, _ := store.Get(ctx, app.HighScoreKey)

	if err := session.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}

	snap := session.Snapshot()
	if _, ok := snap.State.(app.StartState); !ok {
		t.Fatalf("expected start state, got %T", snap.State)
	}
	for i, answered := range snap.Answered {
		if answered {
			t.Fatalf("expected question %d reset", i)
		}
	}
	if !snap.Now.IsZero() {
		t.Fatalf("expected display clock cleared")
	}
	if store.Count(app.HighScoreKey) != writes {
		t.Fatalf("restart must not write the store")
	}
	if value, _, _ := store.Get(ctx, app.HighScoreKey); value != stored {
		t.Fatalf("expected stored %q after restart, got %q", stored, value)
	}

	// A fresh run starts from zero.
	mustStart(t, session)
	defer session.Close()
	st := session.Snapshot().State.(app.InProgressState)
	if st.Index != 0 || st.Score != 0 || st.Selected != "" {
		t.Fatalf("expected fresh in-progress state, got %+v", st)
	}
}

func TestIllegalIntentsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	session, _, _ := newTestSession(t)

	if err := session.Advance(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("advance on start: expected ErrInvalidTransition, got %v", err)
	}
	if err := session.SelectOption("ChatGPT"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("select on start: expected ErrInvalidTransition, got %v", err)
	}
	if err := session.Restart(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("restart on start: expected ErrInvalidTransition, got %v", err)
	}

	mustStart(t, session)
	defer session.Close()
	if err := session.Start(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double start: expected ErrInvalidTransition, got %v", err)
	}
	if err := session.Advance(ctx); !errors.Is(err, domain.ErrNoSelection) {
		t.Fatalf("advance without selection: expected ErrNoSelection, got %v", err)
	}

	q := session.Questions()[0]
	_ = session.SelectOption(q.Answer)
	if err := session.SelectOption("chatgpt"); !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	st := session.Snapshot().State.(app.InProgressState)
	if st.Selected != q.Answer || st.Index != 0 {
		t.Fatalf("expected rejected selection to keep %q, got %+v", q.Answer, st)
	}
}

func TestNewSessionRejectsInvalidQuestions(t *testing.T) {
	scores := app.NewHighScores(memory.NewStore(), nil)
	if _, err := app.NewSession(nil, scores); !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
	broken := domain.QuestionSet{{Prompt: "p", Options: []string{"a", "b"}, Answer: "z"}}
	if _, err := app.NewSession(broken, scores); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// countingStore counts Set calls per key so tests can assert the store was left alone.
type countingStore struct {
	*memory.Store
	mu     sync.Mutex
	counts map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: memory.NewStore(), counts: make(map[string]int)}
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	c.counts[key]++
	c.mu.Unlock()
	return c.Store.Set(ctx, key, value)
}

func (c *countingStore) Count(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

func newTestSession(t *testing.T) (*app.Session, *fakeClock, *countingStore) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC)}
	store := newCountingStore()
	session, err := app.NewSession(domain.DefaultQuestions(), app.NewHighScores(store, nil), app.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session, clock, store
}

func mustStart(t *testing.T, session *app.Session) {
	t.Helper()
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
}

func answer(t *testing.T, session *app.Session, option string) {
	t.Helper()
	if err := session.SelectOption(option); err != nil {
		t.Fatalf("select %q: %v", option, err)
	}
	if err := session.Advance(context.Background()); err != nil {
		t.Fatalf("advance: %v", err)
	}
}

func wrongOption(q domain.Question) string {
	for _, o := range q.Options {
		if o != q.Answer {
			return o
		}
	}
	return ""
}
