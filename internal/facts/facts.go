// Package facts enumerates the fixed universe of single-digit
// multiplication facts (factors 0-10, 121 facts total).
package facts

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxFactor is the largest factor in the fact space.
	MaxFactor = 10

	// Count is the total number of facts: (MaxFactor+1)^2.
	Count = (MaxFactor + 1) * (MaxFactor + 1)
)

// Fact is a single multiplication problem (A, B) with answer A*B.
type Fact struct {
	A int
	B int
}

// Answer returns the product.
func (f Fact) Answer() int {
	return f.A * f.B
}

// Key returns the canonical string encoding, e.g. "3x4".
func (f Fact) Key() string {
	return fmt.Sprintf("%dx%d", f.A, f.B)
}

// String renders the fact for display, e.g. "3 × 4".
func (f Fact) String() string {
	return fmt.Sprintf("%d × %d", f.A, f.B)
}

// ParseKey parses a canonical key back into a Fact. Returns an error
// for malformed keys, factors outside [0, MaxFactor], and non-canonical
// spellings such as "03x4": every fact has exactly one valid key, so
// equal keys never alias the same fact.
func ParseKey(key string) (Fact, error) {
	aStr, bStr, ok := strings.Cut(key, "x")
	if !ok {
		return Fact{}, fmt.Errorf("malformed fact key %q", key)
	}
	a, err := strconv.Atoi(aStr)
	if err != nil {
		return Fact{}, fmt.Errorf("malformed fact key %q: %w", key, err)
	}
	b, err := strconv.Atoi(bStr)
	if err != nil {
		return Fact{}, fmt.Errorf("malformed fact key %q: %w", key, err)
	}
	if a < 0 || a > MaxFactor || b < 0 || b > MaxFactor {
		return Fact{}, fmt.Errorf("fact key %q out of range", key)
	}
	f := Fact{A: a, B: b}
	if f.Key() != key {
		return Fact{}, fmt.Errorf("non-canonical fact key %q", key)
	}
	return f, nil
}

// ValidKey reports whether key parses to a fact in range.
func ValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// all is built once; order is fixed: a ascending, then b ascending.
var all = func() []Fact {
	fs := make([]Fact, 0, Count)
	for a := 0; a <= MaxFactor; a++ {
		for b := 0; b <= MaxFactor; b++ {
			fs = append(fs, Fact{A: a, B: b})
		}
	}
	return fs
}()

// All returns the full fact space in canonical order.
// The returned slice is a copy; callers may reorder it.
func All() []Fact {
	fs := make([]Fact, len(all))
	copy(fs, all)
	return fs
}

// AllKeys returns the canonical keys of the full fact space in order.
func AllKeys() []string {
	keys := make([]string, len(all))
	for i, f := range all {
		keys[i] = f.Key()
	}
	return keys
}
