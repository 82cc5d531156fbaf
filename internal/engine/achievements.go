package engine

import (
	"fmt"

	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/profile"
)

// Award describes a newly earned achievement level.
type Award struct {
	Level   int
	Message string
}

// checkAndAward scans the fact stats for completed achievement
// thresholds. Level N is complete when every one of the 121 facts has at
// least N correct answers. Among complete levels not yet earned, only
// the highest is awarded per call: completing level K implies the levels
// below it were complete earlier and already awarded.
//
// Awarding resets every fact's correct and wrong counters to zero and
// rebuilds the queues, restarting the climb toward the next level.
func (e *Engine) checkAndAward() *Award {
	p := e.prof

	// The minimum correct count across the space bounds the highest
	// complete level. A fact never attempted has no stat, so any gap in
	// the stat map means no level is complete.
	minCorrect := 0
	for i, key := range facts.AllKeys() {
		s, ok := p.Stats[key]
		if !ok {
			return nil
		}
		if i == 0 || s.Correct < minCorrect {
			minCorrect = s.Correct
		}
		if minCorrect == 0 {
			return nil
		}
	}
	if minCorrect > profile.MaxAchievementLevel {
		minCorrect = profile.MaxAchievementLevel
	}

	level := 0
	for n := minCorrect; n >= 1; n-- {
		if !p.HasAchievement(n) {
			level = n
			break
		}
	}
	if level == 0 {
		return nil
	}

	p.AddAchievement(level)
	for _, s := range p.Stats {
		s.Correct = 0
		s.Wrong = 0
	}
	e.recomputeQueues()
	e.persist()

	return &Award{
		Level:   level,
		Message: fmt.Sprintf("Level %d mastered! Every fact answered correctly %d %s over.", level, level, pluralTimes(level)),
	}
}

func pluralTimes(n int) string {
	if n == 1 {
		return "time"
	}
	return "times"
}
