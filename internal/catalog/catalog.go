// internal/catalog/catalog.go
//
// Puzzle catalog management.
//
// Responsibilities:
//   - Load the puzzle catalog from an environment-provided file or fall
//     back to the embedded default set.
//   - Maintain indexes for lookup by id, difficulty and category.
//   - Random selection with an exclusion list and progressive fallback
//     (drop exclusions first, then the category filter).
//
// The catalog is read-only after Init; the game engine never mutates it.
//
// Environment variables:
//   CATALOG_FILE=/path/to/puzzles.json
//
// Constraints:
//   • Every entry needs a unique id, a known category and difficulty,
//     at least one emoji and a non-empty answer.
//   • Initialization runs once (sync.Once).

package catalog

import (
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// Categories and difficulties recognized by the catalog.
const (
	CategoryMovies  = "movies"
	CategoryTVShows = "tvshows"
	CategorySongs   = "songs"
	CategoryPhrases = "phrases"
	CategoryBrands  = "brands"
	CategoryPlaces  = "places"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Categories lists every valid category in display order.
var Categories = []string{
	CategoryMovies, CategoryTVShows, CategorySongs,
	CategoryPhrases, CategoryBrands, CategoryPlaces,
}

// Difficulties lists every valid difficulty from easiest to hardest.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Puzzle is an immutable catalog entry.
type Puzzle struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Emojis     []string `json:"emojis"`
	Answer     string   `json:"answer"`
	Hints      []string `json:"hints"`
}

//go:embed puzzles.json
var embeddedCatalog []byte

var (
	initOnce     sync.Once
	all          []Puzzle
	byID         map[string]*Puzzle
	byDifficulty map[string][]Puzzle
	initialErr   error
)

// ErrEmpty is returned when initialization yields no usable puzzles.
var ErrEmpty = errors.New("catalog: no puzzles loaded")

// Init loads the catalog exactly once, from CATALOG_FILE if set, otherwise
// from the embedded default set.
func Init() error {
	initOnce.Do(func() {
		data := embeddedCatalog
		if path := os.Getenv("CATALOG_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("read catalog %s: %w", path, err)
				return
			}
			data = b
		}
		initialErr = load(data)
	})
	return initialErr
}

func load(data []byte) error {
	var entries []Puzzle
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	validCategory := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		validCategory[c] = true
	}
	validDifficulty := map[string]bool{
		DifficultyEasy: true, DifficultyMedium: true, DifficultyHard: true,
	}

	all = all[:0]
	byID = make(map[string]*Puzzle, len(entries))
	byDifficulty = make(map[string][]Puzzle)
	seen := make(map[string]bool, len(entries))
	for _, p := range entries {
		if p.ID == "" || p.Answer == "" || len(p.Emojis) == 0 {
			return fmt.Errorf("catalog entry %q: missing id, answer or emojis", p.ID)
		}
		if !validCategory[p.Category] {
			return fmt.Errorf("catalog entry %q: unknown category %q", p.ID, p.Category)
		}
		if !validDifficulty[p.Difficulty] {
			return fmt.Errorf("catalog entry %q: unknown difficulty %q", p.ID, p.Difficulty)
		}
		if seen[p.ID] {
			return fmt.Errorf("catalog entry %q: duplicate id", p.ID)
		}
		seen[p.ID] = true
		all = append(all, p)
	}
	for i := range all {
		byID[all[i].ID] = &all[i]
		byDifficulty[all[i].Difficulty] = append(byDifficulty[all[i].Difficulty], all[i])
	}
	if len(all) == 0 {
		return ErrEmpty
	}
	return nil
}

// ByID looks up a puzzle by id.
func ByID(id string) (*Puzzle, bool) {
	p, ok := byID[id]
	return p, ok
}

// All returns every catalog entry.
func All() []Puzzle { return all }

// ByDifficulty returns every puzzle at the given difficulty, flattened
// across categories. The slice order is the catalog order and stable,
// which the deterministic daily shuffle depends on.
func ByDifficulty(difficulty string) []Puzzle {
	return byDifficulty[difficulty]
}

// ByCategoryAndDifficulty filters the catalog on both axes.
func ByCategoryAndDifficulty(category, difficulty string) []Puzzle {
	var out []Puzzle
	for _, p := range byDifficulty[difficulty] {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// RandomExcluding picks a random puzzle from the given category ("all" for
// any), skipping excluded ids. When the filters exhaust the catalog it
// relaxes them progressively: first the exclusion list is dropped, then the
// category filter. Returns ErrEmpty only when the whole catalog is empty.
func RandomExcluding(category string, excludedIDs []string) (*Puzzle, error) {
	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}

	if p := pick(category, excluded); p != nil {
		return p, nil
	}
	if p := pick(category, nil); p != nil {
		return p, nil
	}
	if p := pick("all", nil); p != nil {
		return p, nil
	}
	return nil, ErrEmpty
}

func pick(category string, excluded map[string]bool) *Puzzle {
	var pool []*Puzzle
	for i := range all {
		if category != "all" && all[i].Category != category {
			continue
		}
		if excluded[all[i].ID] {
			continue
		}
		pool = append(pool, &all[i])
	}
	if len(pool) == 0 {
		return nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	if err != nil {
		return pool[0]
	}
	return pool[n.Int64()]
}

// Stats reports the total puzzle count and the count per difficulty.
func Stats() (total int, perDifficulty map[string]int) {
	perDifficulty = make(map[string]int, len(byDifficulty))
	for d, ps := range byDifficulty {
		perDifficulty[d] = len(ps)
	}
	return len(all), perDifficulty
}

// ResetForTest reloads the catalog from raw JSON, bypassing sync.Once.
// Tests only.
func ResetForTest(data []byte) error {
	initOnce.Do(func() {})
	return load(data)
}
