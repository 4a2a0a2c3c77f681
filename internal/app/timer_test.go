package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
	"quiz-widget/internal/domain"
)

func TestDisplayTimerStopsOnCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticks := make(chan Tick, 16)
	session := newTickingSession(t, ticks)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := session.timerDone()
	if done == nil {
		t.Fatalf("expected a running timer after start")
	}
	waitTick(t, ticks)

	for _, q := range session.Questions() {
		if err := session.SelectOption(q.Answer); err != nil {
			t.Fatalf("select: %v", err)
		}
		if err := session.Advance(context.Background()); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	waitDone(t, done)
	if session.timerDone() != nil {
		t.Fatalf("expected no timer on the result screen")
	}
}

func TestDisplayTimerStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticks := make(chan Tick, 16)
	session := newTickingSession(t, ticks)
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := session.timerDone()
	waitTick(t, ticks)

	session.Close()
	session.Close()
	waitDone(t, done)
	if session.Screen() != domain.ScreenInProgress {
		t.Fatalf("close must not change the screen, got %s", session.Screen())
	}
}

func TestTickUpdatesDisplayClockOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	session, err := NewSession(domain.DefaultQuestions(), nil, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := session.timerDone()
	session.Close()
	waitDone(t, done)

	now = start.Add(3500 * time.Millisecond)
	session.tick()

	snap := session.Snapshot()
	if !snap.Now.Equal(now) {
		t.Fatalf("expected display clock %v, got %v", now, snap.Now)
	}
	st := snap.State.(InProgressState)
	if !st.StartedAt.Equal(start) || st.Index != 0 || st.Score != 0 {
		t.Fatalf("tick must not touch session fields, got %+v", st)
	}
}

func newTickingSession(t *testing.T, ticks chan Tick) *Session {
	t.Helper()
	session, err := NewSession(domain.DefaultQuestions(), nil,
		WithTickInterval(5*time.Millisecond),
		WithTickObserver(func(tick Tick) {
			select {
			case ticks <- tick:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func waitTick(t *testing.T, ticks <-chan Tick) {
	t.Helper()
	select {
	case tick := <-ticks:
		if tick.Elapsed == "" {
			t.Fatalf("expected formatted elapsed time")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no tick received")
	}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("display timer still running")
	}
}
