package reveal

import (
	"strings"
	"testing"
)

func TestNextPrioritizesConsonants(t *testing.T) {
	e := New("lion")
	// l, n are consonants; i, o vowels. The first two reveals must both be
	// consonants regardless of random choice.
	for i := 0; i < 2; i++ {
		r := e.Next()
		if r == nil {
			t.Fatal("exhausted early")
		}
		if strings.ContainsAny(r.Char, "AEIOU") {
			t.Fatalf("reveal %d served vowel %s before consonants were done", i, r.Char)
		}
	}
	// Then the vowels.
	for i := 0; i < 2; i++ {
		r := e.Next()
		if r == nil {
			t.Fatal("exhausted early")
		}
		if !strings.ContainsAny(r.Char, "AEIOU") {
			t.Fatalf("expected vowel, got %s", r.Char)
		}
	}
	if e.Next() != nil {
		t.Error("fully revealed answer still produced a reveal")
	}
}

func TestHasNext(t *testing.T) {
	e := New("ab")
	if !e.HasNext() {
		t.Fatal("fresh engine reports exhausted")
	}
	e.Next()
	e.Next()
	if e.HasNext() {
		t.Error("fully revealed engine reports letters left")
	}
	if New(" ").HasNext() {
		t.Error("space-only answer reports letters left")
	}
}

func TestMaskedPreservesSpaces(t *testing.T) {
	e := New("lion king")
	if got := e.Masked(); got != "____ ____" {
		t.Errorf("initial mask = %q", got)
	}

	seen := 0
	for r := e.Next(); r != nil; r = e.Next() {
		seen++
		if r.Char == " " {
			t.Error("space was revealed")
		}
	}
	if seen != 8 {
		t.Errorf("revealed %d letters, want 8", seen)
	}
	if got := e.Masked(); got != "LION KING" {
		t.Errorf("final mask = %q", got)
	}
	if e.Count() != 8 {
		t.Errorf("Count = %d", e.Count())
	}
}

func TestMaskedShowsOnlyRevealed(t *testing.T) {
	e := New("cab")
	r := e.Next()
	masked := e.Masked()
	if len(masked) != 3 {
		t.Fatalf("mask length %d", len(masked))
	}
	visible := strings.Count(masked, "_")
	if visible != 2 {
		t.Errorf("mask %q after one reveal", masked)
	}
	if masked[r.Index] != r.Char[0] {
		t.Errorf("mask %q does not show reveal %+v", masked, r)
	}
}

func TestClueNoRepeatUntilExhausted(t *testing.T) {
	e := New("x")
	clues := []string{"one", "two", "three"}

	seen := make(map[string]bool)
	for i := 0; i < len(clues); i++ {
		c := e.Clue(clues)
		if seen[c] {
			t.Fatalf("clue %q repeated before exhaustion", c)
		}
		seen[c] = true
	}
	// Exhausted: falls back to some clue rather than empty.
	if c := e.Clue(clues); c == "" {
		t.Error("exhausted clue list returned empty string")
	}
	if e.Clue(nil) != "" {
		t.Error("nil clue list returned a clue")
	}
}
