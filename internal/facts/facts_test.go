package facts

import "testing"

func TestAllCountAndOrder(t *testing.T) {
	fs := All()
	if len(fs) != Count {
		t.Fatalf("len(All()) = %d, want %d", len(fs), Count)
	}
	if fs[0] != (Fact{A: 0, B: 0}) {
		t.Errorf("first fact = %v, want 0x0", fs[0])
	}
	if fs[len(fs)-1] != (Fact{A: 10, B: 10}) {
		t.Errorf("last fact = %v, want 10x10", fs[len(fs)-1])
	}
	// a is the outer loop.
	if fs[11] != (Fact{A: 1, B: 0}) {
		t.Errorf("fact[11] = %v, want 1x0", fs[11])
	}
}

func TestAllKeysUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range AllKeys() {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
	if len(seen) != Count {
		t.Errorf("unique keys = %d, want %d", len(seen), Count)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, f := range All() {
		got, err := ParseKey(f.Key())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", f.Key(), err)
		}
		if got != f {
			t.Errorf("ParseKey(%q) = %v, want %v", f.Key(), got, f)
		}
	}
}

func TestParseKeyInvalid(t *testing.T) {
	tests := []string{"", "3", "3x", "x4", "3y4", "11x0", "0x11", "-1x2", "axb", "3x4x5"}
	for _, key := range tests {
		if _, err := ParseKey(key); err == nil {
			t.Errorf("ParseKey(%q): expected error", key)
		}
		if ValidKey(key) {
			t.Errorf("ValidKey(%q) = true, want false", key)
		}
	}
}

func TestParseKeyRejectsNonCanonical(t *testing.T) {
	// Atoi would accept these, but they alias a canonical key and must
	// not pass as a second spelling of the same fact.
	tests := []string{"03x4", "3x04", "3x+4", "+3x4", "00x0", "010x1", "3x-0"}
	for _, key := range tests {
		if _, err := ParseKey(key); err == nil {
			t.Errorf("ParseKey(%q): expected error for non-canonical key", key)
		}
		if ValidKey(key) {
			t.Errorf("ValidKey(%q) = true, want false", key)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	fs := All()
	fs[0] = Fact{A: 9, B: 9}
	if All()[0] != (Fact{A: 0, B: 0}) {
		t.Error("All() slice is shared with callers")
	}
}

func TestAnswer(t *testing.T) {
	tests := []struct {
		fact Fact
		want int
	}{
		{Fact{0, 0}, 0},
		{Fact{0, 7}, 0},
		{Fact{3, 4}, 12},
		{Fact{10, 10}, 100},
	}
	for _, tt := range tests {
		if got := tt.fact.Answer(); got != tt.want {
			t.Errorf("%v.Answer() = %d, want %d", tt.fact, got, tt.want)
		}
	}
}
