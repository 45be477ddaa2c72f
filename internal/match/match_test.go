package match

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Lion King", "lion king"},
		{"  A   Quiet   Place ", "quiet place"},
		{"An Apple!", "apple"},
		{"Spider-Man: No Way Home", "spiderman no way home"},
		{"101 Dalmatians", "101 dalmatians"},
		{"THE THE", "the"}, // only one leading article is stripped
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsMatch(t *testing.T) {
	cases := []struct {
		guess  string
		answer string
		want   bool
	}{
		// exact after normalization
		{"the lion king", "The Lion King", true},
		{"Lion King", "The Lion King", true},
		{"LION KING!!", "The Lion King", true},
		// typo tolerance
		{"lion kng", "The Lion King", true},
		{"breakin bad", "Breaking Bad", true},
		// near-full containment
		{"jurassic park movie", "Jurassic Park", false}, // 18 vs 13, ratio < 0.8
		{"titanic", "Titanics", true},
		// clear misses
		{"cat", "dog", false},
		{"star wars", "Star Trek", false},
		{"", "The Lion King", false},
		{"   ", "The Lion King", false},
		{"the", "The Lion King", false},
	}
	for _, c := range cases {
		if got := IsMatch(c.guess, c.answer); got != c.want {
			t.Errorf("IsMatch(%q, %q) = %v, want %v", c.guess, c.answer, got, c.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
