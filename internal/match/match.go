// internal/match/match.go
//
// Fuzzy answer matching for guess evaluation.
// A guess matches the canonical answer when, after normalization, it is
// exactly equal, a near-full containment, or within typo distance.
//
// Normalization: lowercase, strip everything outside [a-z0-9 ], collapse
// whitespace runs, drop one leading article ("the"/"a"/"an"), trim.

package match

import "strings"

// Normalize reduces s to the canonical comparison form.
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n':
			b.WriteByte(' ')
		}
	}
	s = strings.Join(strings.Fields(b.String()), " ")
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, article) {
			s = s[len(article):]
			break
		}
	}
	return strings.TrimSpace(s)
}

// IsMatch reports whether a player's guess counts as the canonical answer.
func IsMatch(guess, answer string) bool {
	g := Normalize(guess)
	a := Normalize(answer)
	if g == "" || a == "" {
		return false
	}
	if g == a {
		return true
	}

	// Containment counts only when the shorter side covers ≥80% of the longer.
	if strings.Contains(g, a) || strings.Contains(a, g) {
		ratio := float64(min(len(g), len(a))) / float64(max(len(g), len(a)))
		if ratio >= 0.8 {
			return true
		}
	}

	dist := levenshtein(g, a)
	if len(a) > 5 && dist <= 2 {
		return true
	}
	similarity := 1 - float64(dist)/float64(max(len(g), len(a)))
	return similarity >= 0.85
}

// levenshtein computes the edit distance between a and b using a
// two-row dynamic programming table.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(b); i++ {
		curr[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if b[i-1] == a[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, min(curr[j-1]+1, prev[j]+1))
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}
