// internal/reveal/reveal.go
//
// Letter-reveal state for one puzzle attempt.
// Reveals prioritize consonants: while any consonant is hidden, one is
// chosen uniformly at random; only then do vowels start appearing. Spaces
// are never revealed or counted. The engine also hands out the puzzle's
// auxiliary text clues, tracking which were already shown so a clue does
// not repeat within the attempt. All state is per-session and discarded
// on puzzle change.

package reveal

import (
	"math/rand"
	"strings"
)

const vowels = "AEIOU"

// Reveal is one uncovered letter.
type Reveal struct {
	Index int    `json:"index"`
	Char  string `json:"char"`
}

// Engine tracks reveal state for a single answer.
type Engine struct {
	answer    string
	revealed  []bool
	usedClues map[int]bool
}

// New builds an engine for the given answer (stored uppercased).
func New(answer string) *Engine {
	up := strings.ToUpper(answer)
	return &Engine{
		answer:    up,
		revealed:  make([]bool, len(up)),
		usedClues: make(map[int]bool),
	}
}

// HasNext reports whether any non-space position is still hidden.
func (e *Engine) HasNext() bool {
	for i := 0; i < len(e.answer); i++ {
		if !e.revealed[i] && e.answer[i] != ' ' {
			return true
		}
	}
	return false
}

// Next reveals one more letter. Returns nil once every non-space position
// is revealed.
func (e *Engine) Next() *Reveal {
	var consonants, others []int
	for i := 0; i < len(e.answer); i++ {
		ch := e.answer[i]
		if e.revealed[i] || ch == ' ' {
			continue
		}
		if strings.IndexByte(vowels, ch) >= 0 {
			others = append(others, i)
		} else {
			consonants = append(consonants, i)
		}
	}

	pool := consonants
	if len(pool) == 0 {
		pool = others
	}
	if len(pool) == 0 {
		return nil
	}
	idx := pool[rand.Intn(len(pool))]
	e.revealed[idx] = true
	return &Reveal{Index: idx, Char: string(e.answer[idx])}
}

// Masked returns the answer with unrevealed letters as underscores,
// preserving word boundaries.
func (e *Engine) Masked() string {
	var b strings.Builder
	for i := 0; i < len(e.answer); i++ {
		switch {
		case e.answer[i] == ' ':
			b.WriteByte(' ')
		case e.revealed[i]:
			b.WriteByte(e.answer[i])
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Count returns how many letters have been revealed.
func (e *Engine) Count() int {
	n := 0
	for _, r := range e.revealed {
		if r {
			n++
		}
	}
	return n
}

// Clue returns an auxiliary text clue that has not been shown during this
// attempt. Once all clues are consumed it falls back to a random one.
func (e *Engine) Clue(clues []string) string {
	if len(clues) == 0 {
		return ""
	}
	var unused []int
	for i := range clues {
		if !e.usedClues[i] {
			unused = append(unused, i)
		}
	}
	if len(unused) == 0 {
		return clues[rand.Intn(len(clues))]
	}
	idx := unused[rand.Intn(len(unused))]
	e.usedClues[idx] = true
	return clues[idx]
}
