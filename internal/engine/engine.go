// Package engine implements the question-selection and mastery-tracking
// core of the drill: queue management, next-fact selection, per-session
// tracking, and achievement evaluation, all scoped to one profile.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/profile"
)

// GameLength is the number of distinct facts per session.
const GameLength = 20

// Phase is the engine's explicit state machine. It replaces implicit
// guard flags: input is only accepted in PhaseAwaitingAnswer.
type Phase int

const (
	PhaseIdle            Phase = iota // no session running
	PhaseAwaitingAnswer               // a question is displayed
	PhaseAwaitingAck                  // feedback shown, waiting for acknowledgment
	PhaseSessionComplete              // summary pending or displayed
)

// NextAction tells the presentation layer what to show after an advance.
type NextAction int

const (
	ActionShowQuestion NextAction = iota
	ActionShowSummary
)

// ErrNoActiveQuestion is returned by SubmitAnswer when no question is
// awaiting an answer (reentrant submit, feedback pending, or idle).
var ErrNoActiveQuestion = errors.New("no active question")

// Saver persists the active profile. Writes are best-effort: the engine
// swallows save errors rather than interrupting a session.
type Saver interface {
	SaveProfile(ctx context.Context, p *profile.Profile) error
}

// Engine owns all mutable drill state for one profile. Construct a new
// Engine to switch profiles; there is no global state.
type Engine struct {
	prof  *profile.Profile
	saver Saver
	rng   *rand.Rand
	now   func() time.Time

	phase      Phase
	modalDepth int

	current       *facts.Fact
	questionStart time.Time

	asked       map[string]bool
	missed      []string // insertion order
	missedSet   map[string]bool
	askedCount  int
	correct     int
	streak      int
	maxStreak   int
	totalTimeMs int64

	lastSummary  *profile.Summary
	pendingAward *Award
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source (tests use a fixed seed).
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine bound to p. The profile is sanitized and its
// queues rebuilt from fact-stat truth before first use.
func New(p *profile.Profile, saver Saver, opts ...Option) *Engine {
	e := &Engine{
		prof:  p,
		saver: saver,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	p.Sanitize()
	e.recomputeQueues()
	return e
}

// Profile returns the active profile.
func (e *Engine) Profile() *profile.Profile {
	return e.prof
}

// Phase returns the current engine phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// PushModal and PopModal are called by the presentation layer around any
// dialog that should block answer input.
func (e *Engine) PushModal() { e.modalDepth++ }

// PopModal decrements the modal counter.
func (e *Engine) PopModal() {
	if e.modalDepth > 0 {
		e.modalDepth--
	}
}

// InputAllowed reports whether an answer would be accepted right now.
func (e *Engine) InputAllowed() bool {
	return e.phase == PhaseAwaitingAnswer && e.modalDepth == 0
}

// CurrentQuestion returns the fact awaiting an answer, or nil.
func (e *Engine) CurrentQuestion() *facts.Fact {
	if e.phase != PhaseAwaitingAnswer || e.current == nil {
		return nil
	}
	f := *e.current
	return &f
}

// persist writes the profile through the saver, best-effort.
func (e *Engine) persist() {
	if e.saver == nil {
		return
	}
	e.prof.Touch()
	_ = e.saver.SaveProfile(context.Background(), e.prof)
}
