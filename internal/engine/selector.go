package engine

import "github.com/mpreston/factdrill/internal/facts"

var allKeysCache = facts.AllKeys()

// missedInjectionAt is the distinct-asked count at which one carryover
// missed fact is force-served.
const missedInjectionAt = 2

// pickNext chooses the next fact key to present, or "" when the session
// is over. Priority order, first match wins:
//
//  1. terminate at GameLength distinct facts asked
//  2. inject one carried-over missed fact when exactly two distinct
//     facts have been asked (the pop is consumed even if the key was
//     already asked this session)
//  3. uniform-random among unmastered facts not yet asked
//  4. rotate the mastered cycle queue to the first entry not yet asked
//  5. uniform-random among any facts not yet asked
func (e *Engine) pickNext() string {
	p := e.prof

	if len(e.asked) >= GameLength {
		return ""
	}

	if len(e.asked) == missedInjectionAt && len(p.LastMissed) > 0 {
		key := p.LastMissed[0]
		p.LastMissed = p.LastMissed[1:]
		e.persist()
		if !e.asked[key] {
			return key
		}
	}

	if len(p.UnmasteredQueue)+len(p.CycleQueue) == 0 {
		e.recomputeQueues()
	}

	if key := e.randomUnasked(p.UnmasteredQueue); key != "" {
		return key
	}

	// Cycle queue rotates on selection so consecutive sessions start
	// from different facts; the rotated order is persisted.
	for range p.CycleQueue {
		key := p.CycleQueue[0]
		p.CycleQueue = append(p.CycleQueue[1:], key)
		if !e.asked[key] {
			e.persist()
			return key
		}
	}

	return e.randomUnasked(allKeysCache)
}

// randomUnasked returns a uniform-random key from candidates that has
// not been asked this session, or "" if none remain.
func (e *Engine) randomUnasked(candidates []string) string {
	var pool []string
	for _, k := range candidates {
		if !e.asked[k] {
			pool = append(pool, k)
		}
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[e.rng.Intn(len(pool))]
}
