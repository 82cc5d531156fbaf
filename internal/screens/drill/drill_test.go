package drill

import (
	"context"
	"math/rand"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/mpreston/factdrill/internal/engine"
	"github.com/mpreston/factdrill/internal/profile"
	"github.com/mpreston/factdrill/internal/router"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/store"
)

// mockAttemptRepo implements store.AttemptRepo for testing.
type mockAttemptRepo struct {
	attempts []store.Attempt
}

func (m *mockAttemptRepo) Append(_ context.Context, a store.Attempt) error {
	m.attempts = append(m.attempts, a)
	return nil
}
func (m *mockAttemptRepo) Totals(_ context.Context, _ string) (store.AttemptTotals, error) {
	return store.AttemptTotals{}, nil
}
func (m *mockAttemptRepo) HardestFacts(_ context.Context, _ string, _ int) ([]store.FactTotals, error) {
	return nil, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDrillScreen() (*DrillScreen, *mockAttemptRepo) {
	eng := engine.New(profile.New("Test"), nil,
		engine.WithRand(rand.New(rand.NewSource(3))))
	repo := &mockAttemptRepo{}
	d := New(eng, repo)
	d.Init()
	return d, repo
}

// typeAnswer feeds the digits of n through the input as key presses.
func typeAnswer(t *testing.T, d *DrillScreen, n int) *DrillScreen {
	t.Helper()
	var scr screen.Screen = d
	if n == 0 {
		scr, _ = scr.Update(keyPress('0'))
	}
	var digits []rune
	for n > 0 {
		digits = append([]rune{rune('0' + n%10)}, digits...)
		n /= 10
	}
	for _, r := range digits {
		scr, _ = scr.Update(keyPress(r))
	}
	return scr.(*DrillScreen)
}

func TestDrillScreen_Title(t *testing.T) {
	d, _ := testDrillScreen()
	if d.Title() != "Drill" {
		t.Errorf("Title = %q, want %q", d.Title(), "Drill")
	}
}

func TestDrillScreen_View_Question(t *testing.T) {
	d, _ := testDrillScreen()
	view := d.View(80, 24)
	if view == "" {
		t.Error("expected non-empty question view")
	}
}

func TestDrillScreen_CorrectAnswer(t *testing.T) {
	d, repo := testDrillScreen()

	q := d.eng.CurrentQuestion()
	if q == nil {
		t.Fatal("expected an active question after Init")
	}
	d = typeAnswer(t, d, q.Answer())

	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	dd := scr.(*DrillScreen)

	if dd.feedback == nil {
		t.Fatal("expected feedback after submit")
	}
	if !dd.feedback.Correct {
		t.Error("expected the answer to be scored correct")
	}
	if len(repo.attempts) != 1 {
		t.Fatalf("attempts recorded = %d, want 1", len(repo.attempts))
	}
	if repo.attempts[0].FactKey != q.Key() {
		t.Errorf("attempt fact = %q, want %q", repo.attempts[0].FactKey, q.Key())
	}
}

func TestDrillScreen_WrongAnswer(t *testing.T) {
	d, _ := testDrillScreen()

	q := d.eng.CurrentQuestion()
	d = typeAnswer(t, d, q.Answer()+1)

	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	dd := scr.(*DrillScreen)

	if dd.feedback == nil {
		t.Fatal("expected feedback after submit")
	}
	if dd.feedback.Correct {
		t.Error("expected the answer to be scored wrong")
	}
}

func TestDrillScreen_FeedbackAdvancesToNextQuestion(t *testing.T) {
	d, _ := testDrillScreen()

	first := *d.eng.CurrentQuestion()
	d = typeAnswer(t, d, first.Answer())
	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress(' '))
	dd := scr.(*DrillScreen)

	if dd.feedback != nil {
		t.Error("expected feedback to be dismissed")
	}
	if dd.eng.CurrentQuestion() == nil {
		t.Error("expected a fresh question after acknowledging feedback")
	}
}

func TestDrillScreen_EmptySubmitIgnored(t *testing.T) {
	d, _ := testDrillScreen()

	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	dd := scr.(*DrillScreen)

	if dd.feedback != nil {
		t.Error("expected no feedback for an empty submit")
	}
}

func TestDrillScreen_QuitConfirm(t *testing.T) {
	d, _ := testDrillScreen()

	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	dd := scr.(*DrillScreen)
	if !dd.quitConfirm {
		t.Error("expected quit confirmation after Esc")
	}

	scr, _ = dd.Update(keyPress('n'))
	dd = scr.(*DrillScreen)
	if dd.quitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
	if dd.eng.CurrentQuestion() == nil {
		t.Error("expected the question to survive a dismissed quit")
	}
}

func TestDrillScreen_QuitConfirm_Yes(t *testing.T) {
	d, _ := testDrillScreen()

	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg to summary, got %T", cmd())
	}
}

func TestDrillScreen_InputRejectsLetters(t *testing.T) {
	d, _ := testDrillScreen()

	var scr screen.Screen = d
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(keyPress('7'))
	dd := scr.(*DrillScreen)

	if got := dd.input.Value(); got != "7" {
		t.Errorf("input value = %q, want %q", got, "7")
	}
}

func TestDrillScreen_HandlesEsc(t *testing.T) {
	d, _ := testDrillScreen()
	if !d.HandlesEsc() {
		t.Error("drill should claim Esc for its quit confirm")
	}
}

func TestDrillScreen_KeyHints(t *testing.T) {
	d, _ := testDrillScreen()
	if len(d.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}
