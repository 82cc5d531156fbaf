package engine

import (
	"math"

	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/profile"
)

// AttemptResult reports the outcome of one answer submission.
type AttemptResult struct {
	Fact          facts.Fact
	Correct       bool
	CorrectAnswer int
	ElapsedMs     int64

	// Award is non-nil when this answer crossed an achievement threshold.
	Award *Award

	// SessionOver is true when this was the session's final question.
	SessionOver bool
}

// LiveStats is the running in-session display data.
type LiveStats struct {
	Percent     int
	Streak      int
	AvgTimeSec  int
	GamesPlayed int
	Asked       int
	Length      int
}

// StartSession resets per-session state, rebuilds the queues from
// fact-stat truth, and serves the first question.
func (e *Engine) StartSession() NextAction {
	e.prof.Sanitize()
	e.recomputeQueues()

	e.asked = make(map[string]bool)
	e.missed = nil
	e.missedSet = make(map[string]bool)
	e.askedCount = 0
	e.correct = 0
	e.streak = 0
	e.maxStreak = 0
	e.totalTimeMs = 0
	e.current = nil
	e.lastSummary = nil
	e.phase = PhaseIdle

	return e.serveNext()
}

// SubmitAnswer records an attempt against the current question. It is a
// guarded no-op (ErrNoActiveQuestion) when no question is active, when
// feedback awaits acknowledgment, or while a modal is open.
func (e *Engine) SubmitAnswer(value int) (AttemptResult, error) {
	if !e.InputAllowed() || e.current == nil {
		return AttemptResult{}, ErrNoActiveQuestion
	}

	f := *e.current
	key := f.Key()
	now := e.now()
	elapsed := now.Sub(e.questionStart).Milliseconds()
	correct := value == f.Answer()

	e.askedCount++
	e.asked[key] = true
	e.totalTimeMs += elapsed

	p := e.prof
	stat := p.Stat(key)
	stat.LastSeenMs = now.UnixMilli()

	res := AttemptResult{
		Fact:          f,
		Correct:       correct,
		CorrectAnswer: f.Answer(),
		ElapsedMs:     elapsed,
	}

	if correct {
		stat.Correct++
		e.correct++
		e.streak++
		if e.streak > e.maxStreak {
			e.maxStreak = e.streak
		}
		p.GlobalStreak++
		if p.GlobalStreak > p.Best.BestStreak {
			p.Best.BestStreak = p.GlobalStreak
		}
		// First-ever correct answer: the single unmastered->mastered edge.
		if stat.Correct == 1 {
			e.promoteMastered(key)
		}
		res.Award = e.checkAndAward()
	} else {
		stat.Wrong++
		e.streak = 0
		p.GlobalStreak = 0
		if !e.missedSet[key] {
			e.missedSet[key] = true
			e.missed = append(e.missed, key)
		}
	}

	res.SessionOver = len(e.asked) >= GameLength
	e.phase = PhaseAwaitingAck
	e.persist()
	return res, nil
}

// Advance acknowledges displayed feedback and moves the session forward:
// either the next question is served or the session ends with a summary.
func (e *Engine) Advance() NextAction {
	if e.phase != PhaseAwaitingAck {
		if e.phase == PhaseSessionComplete {
			return ActionShowSummary
		}
		return ActionShowQuestion
	}
	return e.serveNext()
}

// serveNext picks and activates the next question, ending the session
// when the selector is exhausted.
func (e *Engine) serveNext() NextAction {
	key := e.pickNext()
	if key == "" {
		e.endSession()
		return ActionShowSummary
	}
	f, err := facts.ParseKey(key)
	if err != nil {
		// Selector only emits keys from the fact space; treat a bad key
		// as exhaustion rather than crash.
		e.endSession()
		return ActionShowSummary
	}
	e.current = &f
	e.questionStart = e.now()
	e.phase = PhaseAwaitingAnswer
	return ActionShowQuestion
}

// EndSessionEarly finalizes the session from any in-session phase,
// used when the player quits mid-session.
func (e *Engine) EndSessionEarly() {
	if e.phase == PhaseSessionComplete || e.phase == PhaseIdle {
		return
	}
	e.endSession()
}

// endSession computes the summary, rolls records forward, stores the
// missed-fact carryover, and runs a final achievement pass.
func (e *Engine) endSession() {
	p := e.prof

	percent := 0
	avg := 0
	if e.askedCount > 0 {
		percent = int(math.Round(100 * float64(e.correct) / float64(e.askedCount)))
		avg = int(math.Round(float64(e.totalTimeMs) / float64(e.askedCount) / 1000))
	}

	if e.maxStreak > p.Best.BestStreak {
		p.Best.BestStreak = e.maxStreak
	}
	if percent > p.Best.BestPercent {
		p.Best.BestPercent = percent
	}
	if avg > 0 && (p.Best.BestAvgTimeSec == nil || avg < *p.Best.BestAvgTimeSec) {
		v := avg
		p.Best.BestAvgTimeSec = &v
	}

	summary := profile.Summary{Percent: percent, MaxStreak: e.maxStreak}
	if e.askedCount > 0 {
		v := avg
		summary.AvgTimeSec = &v
	}
	p.Previous = summary
	e.lastSummary = &summary

	carry := e.missed
	if len(carry) > profile.MaxMissedCarryover {
		carry = carry[:profile.MaxMissedCarryover]
	}
	p.LastMissed = append([]string(nil), carry...)

	p.GamesPlayed++

	// A threshold crossed on the session's last answer is caught here.
	e.pendingAward = e.checkAndAward()

	e.current = nil
	e.phase = PhaseSessionComplete
	e.persist()
}

// Summary returns the completed session's summary, or nil if no session
// has finished since the engine was constructed.
func (e *Engine) Summary() *profile.Summary {
	return e.lastSummary
}

// TakeAward returns an award earned during session finalization, once.
func (e *Engine) TakeAward() *Award {
	a := e.pendingAward
	e.pendingAward = nil
	return a
}

// MissedFacts returns the facts missed this session, in the order first
// missed, capped at the carryover limit.
func (e *Engine) MissedFacts() []facts.Fact {
	var out []facts.Fact
	for _, key := range e.missed {
		if len(out) >= profile.MaxMissedCarryover {
			break
		}
		f, err := facts.ParseKey(key)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// LiveStats returns the running stats for the header display.
func (e *Engine) LiveStats() LiveStats {
	percent := 0
	avg := 0
	if e.askedCount > 0 {
		percent = int(math.Round(100 * float64(e.correct) / float64(e.askedCount)))
		avg = int(math.Round(float64(e.totalTimeMs) / float64(e.askedCount) / 1000))
	}
	asked := e.askedCount
	if e.phase == PhaseAwaitingAnswer && asked < GameLength {
		asked++ // count the question on screen
	}
	return LiveStats{
		Percent:     percent,
		Streak:      e.prof.GlobalStreak,
		AvgTimeSec:  avg,
		GamesPlayed: e.prof.GamesPlayed,
		Asked:       asked,
		Length:      GameLength,
	}
}
