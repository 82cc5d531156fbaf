package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/profile"
)

// memSaver records saves in memory for tests.
type memSaver struct {
	saves int
	last  *profile.Profile
	fail  bool
}

func (m *memSaver) SaveProfile(_ context.Context, p *profile.Profile) error {
	m.saves++
	m.last = p
	if m.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func newTestEngine(t *testing.T) (*Engine, *memSaver) {
	t.Helper()
	saver := &memSaver{}
	e := New(profile.New("Test"), saver,
		WithRand(rand.New(rand.NewSource(1))),
	)
	return e, saver
}

// answerCurrent submits the right or wrong answer for the active question.
func answerCurrent(t *testing.T, e *Engine, right bool) AttemptResult {
	t.Helper()
	q := e.CurrentQuestion()
	if q == nil {
		t.Fatal("no current question")
	}
	value := q.Answer()
	if !right {
		value = q.Answer() + 1
	}
	res, err := e.SubmitAnswer(value)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return res
}

func TestStartSessionServesQuestion(t *testing.T) {
	e, _ := newTestEngine(t)
	if action := e.StartSession(); action != ActionShowQuestion {
		t.Fatalf("StartSession = %v, want ActionShowQuestion", action)
	}
	if e.CurrentQuestion() == nil {
		t.Fatal("no question after StartSession")
	}
	if e.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase = %v, want PhaseAwaitingAnswer", e.Phase())
	}
}

func TestSubmitRejectedWhenNoQuestion(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.SubmitAnswer(4); err != ErrNoActiveQuestion {
		t.Errorf("idle submit err = %v, want ErrNoActiveQuestion", err)
	}

	e.StartSession()
	answerCurrent(t, e, true)
	// Feedback pending: a second submit is a guarded no-op.
	if _, err := e.SubmitAnswer(4); err != ErrNoActiveQuestion {
		t.Errorf("reentrant submit err = %v, want ErrNoActiveQuestion", err)
	}
}

func TestModalBlocksInput(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()

	e.PushModal()
	if e.InputAllowed() {
		t.Error("input allowed with modal open")
	}
	if _, err := e.SubmitAnswer(0); err != ErrNoActiveQuestion {
		t.Errorf("submit with modal open err = %v, want ErrNoActiveQuestion", err)
	}
	e.PopModal()
	if !e.InputAllowed() {
		t.Error("input blocked after modal closed")
	}
	// Extra pops never go negative.
	e.PopModal()
	if !e.InputAllowed() {
		t.Error("input blocked after excess PopModal")
	}
}

func TestSessionEndsAtGameLength(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()

	for i := 0; i < GameLength; i++ {
		res := answerCurrent(t, e, true)
		wantOver := i == GameLength-1
		if res.SessionOver != wantOver {
			t.Fatalf("question %d: SessionOver = %v, want %v", i+1, res.SessionOver, wantOver)
		}
		action := e.Advance()
		if wantOver {
			if action != ActionShowSummary {
				t.Fatalf("final Advance = %v, want ActionShowSummary", action)
			}
		} else if action != ActionShowQuestion {
			t.Fatalf("Advance %d = %v, want ActionShowQuestion", i+1, action)
		}
	}

	if e.Phase() != PhaseSessionComplete {
		t.Errorf("phase = %v, want PhaseSessionComplete", e.Phase())
	}
	sum := e.Summary()
	if sum == nil {
		t.Fatal("no summary after session end")
	}
	if sum.Percent != 100 {
		t.Errorf("Percent = %d, want 100", sum.Percent)
	}
}

func TestNoRepeatsWithinSession(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()

	seen := make(map[string]bool)
	for i := 0; i < GameLength; i++ {
		q := e.CurrentQuestion()
		if q == nil {
			t.Fatalf("question %d: nil", i+1)
		}
		key := q.Key()
		if seen[key] {
			t.Fatalf("fact %s served twice in one session", key)
		}
		if !facts.ValidKey(key) {
			t.Fatalf("served key %q outside fact space", key)
		}
		seen[key] = true
		answerCurrent(t, e, i%3 != 0)
		e.Advance()
	}
}

func TestStreakAndBestTracking(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()

	answerCurrent(t, e, true)
	e.Advance()
	answerCurrent(t, e, true)
	e.Advance()

	p := e.Profile()
	if p.GlobalStreak != 2 {
		t.Errorf("GlobalStreak = %d, want 2", p.GlobalStreak)
	}
	if p.Best.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2 (opportunistic update)", p.Best.BestStreak)
	}

	answerCurrent(t, e, false)
	e.Advance()
	if p.GlobalStreak != 0 {
		t.Errorf("GlobalStreak after wrong = %d, want 0", p.GlobalStreak)
	}
	if p.Best.BestStreak != 2 {
		t.Errorf("BestStreak after wrong = %d, want 2", p.Best.BestStreak)
	}
}

func TestGlobalStreakCarriesAcrossSessions(t *testing.T) {
	saver := &memSaver{}
	p := profile.New("Test")
	p.GlobalStreak = 5
	e := New(p, saver, WithRand(rand.New(rand.NewSource(2))))

	e.StartSession()
	answerCurrent(t, e, true)
	if p.GlobalStreak != 6 {
		t.Errorf("GlobalStreak = %d, want 6 (carried from previous session)", p.GlobalStreak)
	}
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	saver := &memSaver{fail: true}
	e := New(profile.New("Test"), saver, WithRand(rand.New(rand.NewSource(3))))
	e.StartSession()

	res := answerCurrent(t, e, true)
	if !res.Correct {
		t.Error("attempt not recorded despite failing saver")
	}
	if saver.saves == 0 {
		t.Error("save never attempted")
	}
}

func TestEndSessionEarly(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartSession()
	answerCurrent(t, e, true)
	e.EndSessionEarly()

	if e.Phase() != PhaseSessionComplete {
		t.Fatalf("phase = %v, want PhaseSessionComplete", e.Phase())
	}
	sum := e.Summary()
	if sum == nil {
		t.Fatal("no summary after early end")
	}
	if sum.Percent != 100 {
		t.Errorf("Percent = %d, want 100 (one asked, one correct)", sum.Percent)
	}
	if e.Profile().GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", e.Profile().GamesPlayed)
	}
}

func TestElapsedTimeUsesClock(t *testing.T) {
	saver := &memSaver{}
	base := time.Unix(1700000000, 0)
	current := base
	e := New(profile.New("Test"), saver,
		WithRand(rand.New(rand.NewSource(4))),
		WithClock(func() time.Time { return current }),
	)
	e.StartSession()

	current = current.Add(2500 * time.Millisecond)
	res := answerCurrent(t, e, true)
	if res.ElapsedMs != 2500 {
		t.Errorf("ElapsedMs = %d, want 2500", res.ElapsedMs)
	}
	key := res.Fact.Key()
	if got := e.Profile().Stats[key].LastSeenMs; got != current.UnixMilli() {
		t.Errorf("LastSeenMs = %d, want %d", got, current.UnixMilli())
	}
}
