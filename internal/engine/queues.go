package engine

import "github.com/mpreston/factdrill/internal/facts"

// recomputeQueues rebuilds both queues strictly from fact-stat truth:
// a key belongs to the cycle queue iff its fact is mastered, to the
// unmastered queue otherwise, with no duplicates and no key in both.
// Keys already queued on the correct side keep their position so the
// cycle queue's rotation point survives the rebuild; missing keys are
// appended in canonical fact order. Carryover keys that no longer parse
// were already dropped by Profile.Sanitize, which runs before this.
func (e *Engine) recomputeQueues() {
	p := e.prof

	var unmastered, cycle []string
	unSeen := make(map[string]bool)
	cySeen := make(map[string]bool)

	keep := func(queue []string, want func(string) bool, seen map[string]bool) []string {
		var kept []string
		for _, k := range queue {
			if seen[k] || !facts.ValidKey(k) || !want(k) {
				continue
			}
			seen[k] = true
			kept = append(kept, k)
		}
		return kept
	}
	unmastered = keep(p.UnmasteredQueue, func(k string) bool { return !p.Mastered(k) }, unSeen)
	cycle = keep(p.CycleQueue, p.Mastered, cySeen)

	for _, k := range facts.AllKeys() {
		if p.Mastered(k) {
			if !cySeen[k] {
				cySeen[k] = true
				cycle = append(cycle, k)
			}
		} else if !unSeen[k] {
			unSeen[k] = true
			unmastered = append(unmastered, k)
		}
	}

	p.UnmasteredQueue = unmastered
	p.CycleQueue = cycle
}

// promoteMastered moves a key from the unmastered queue to the back of
// the cycle queue on the fact's first-ever correct answer. Idempotent:
// a key already cycling is left alone.
func (e *Engine) promoteMastered(key string) {
	p := e.prof
	for i, k := range p.UnmasteredQueue {
		if k == key {
			p.UnmasteredQueue = append(p.UnmasteredQueue[:i], p.UnmasteredQueue[i+1:]...)
			break
		}
	}
	for _, k := range p.CycleQueue {
		if k == key {
			return
		}
	}
	p.CycleQueue = append(p.CycleQueue, key)
}
