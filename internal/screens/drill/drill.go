// Package drill runs one 20-question practice session.
package drill

import (
	"context"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mpreston/factdrill/internal/engine"
	"github.com/mpreston/factdrill/internal/router"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/screens/summary"
	"github.com/mpreston/factdrill/internal/store"
	"github.com/mpreston/factdrill/internal/ui/components"
	"github.com/mpreston/factdrill/internal/ui/layout"
)

// DrillScreen implements screen.Screen for an active drill session.
type DrillScreen struct {
	eng      *engine.Engine
	attempts store.AttemptRepo
	rng      *rand.Rand

	input         components.TextInput
	feedback      *engine.AttemptResult
	feedbackTitle string
	tip           string
	quitConfirm   bool
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.EscHandler = (*DrillScreen)(nil)

// New creates a DrillScreen driving the given engine.
func New(eng *engine.Engine, attempts store.AttemptRepo) *DrillScreen {
	return &DrillScreen{
		eng:      eng,
		attempts: attempts,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	action := d.eng.StartSession()
	if action == summaryAction {
		return d.toSummary()
	}
	d.freshQuestion()
	return d.input.Init()
}

// summaryAction aliases the engine constant for readability here.
const summaryAction = engine.ActionShowSummary

func (d *DrillScreen) Title() string {
	return "Drill"
}

// PlayerName reports the active player for the header.
func (d *DrillScreen) PlayerName() string {
	return d.eng.Profile().Name
}

// PlayerStreak reports the running streak for the header.
func (d *DrillScreen) PlayerStreak() int {
	return d.eng.Profile().GlobalStreak
}

// HandlesEsc tells the app shell to forward Esc instead of popping:
// Esc opens the quit confirmation here.
func (d *DrillScreen) HandlesEsc() bool {
	return true
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	if d.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End drill"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if d.feedback != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return d.handleKey(kmsg)
	}
	if d.eng.InputAllowed() {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if d.quitConfirm {
		switch key {
		case "y", "Y":
			d.quitConfirm = false
			d.eng.PopModal()
			d.eng.EndSessionEarly()
			return d, d.toSummary()
		case "n", "N", "esc":
			d.quitConfirm = false
			d.eng.PopModal()
		}
		return d, nil
	}

	if d.feedback != nil {
		// Any key acknowledges.
		d.feedback = nil
		if d.eng.Advance() == summaryAction {
			return d, d.toSummary()
		}
		d.freshQuestion()
		return d, d.input.Init()
	}

	switch key {
	case "esc":
		d.quitConfirm = true
		d.eng.PushModal()
		return d, nil
	case "enter":
		return d.submit()
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	value, err := d.input.NumericValue()
	if err != nil {
		// Empty or non-numeric input: stay on the question.
		return d, nil
	}

	res, err := d.eng.SubmitAnswer(value)
	if err != nil {
		return d, nil
	}

	d.feedback = &res
	if res.Correct {
		d.feedbackTitle = randomPraise(d.rng)
	} else {
		d.feedbackTitle = randomEncouragement(d.rng)
	}

	// History is best-effort; a failed write never interrupts play.
	_ = d.attempts.Append(context.Background(), store.Attempt{
		Profile:   d.eng.Profile().Name,
		FactKey:   res.Fact.Key(),
		Answer:    value,
		Correct:   res.Correct,
		ElapsedMs: res.ElapsedMs,
	})

	return d, nil
}

// freshQuestion resets the input and rotates the tip for the question
// now on screen.
func (d *DrillScreen) freshQuestion() {
	d.input = components.NewTextInput("?", true, 4)
	d.tip = randomTip(d.rng)
}

// toSummary swaps this screen for the session summary. The summary's
// play-again action builds a fresh drill on the same engine.
func (d *DrillScreen) toSummary() tea.Cmd {
	eng, attempts := d.eng, d.attempts
	again := func() screen.Screen { return New(eng, attempts) }
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(eng, again)}
	}
}
