// internal/leaderboard/synthetic.go
//
// Synthetic competitor generation. These entries exist purely to make a
// fresh local leaderboard feel populated; IsSelf is always false on them.

package leaderboard

import (
	"fmt"
	"math/rand"
)

var syntheticNames = []string{
	"EmojiMaster", "PuzzleKing", "BrainiacPro", "QuizWhiz", "WordNinja",
	"CleverCat", "SmartFox", "WiseOwl", "QuickThinker", "MindReader",
	"Genius101", "PuzzlePro", "BrainStorm", "ThinkTank", "IdeaGuru",
	"LogicLord", "EmojiExpert", "GuessGod", "DecodeKing", "SymbolSage",
	"MovieBuff", "SongStar", "PhraseFan", "BrandBoss", "TriviaKing",
	"Riddler", "Enigma", "Cipher", "Oracle", "Prophet",
	"MasterMind", "DeepThink", "QuickWit", "SharpMind", "BrightSpark",
	"StarPlayer", "TopGamer", "ProSolver", "FastGuess", "SureShot",
}

// Score ranges scale with how much play a period can accumulate.
var syntheticRanges = map[string][2]int{
	PeriodDaily:   {100, 750},
	PeriodWeekly:  {500, 5000},
	PeriodMonthly: {2000, 20000},
}

// synthetic generates the top-up batch for one period.
func synthetic(period, date string) []Entry {
	r, ok := syntheticRanges[period]
	if !ok {
		r = syntheticRanges[PeriodDaily]
	}

	used := make(map[string]bool, syntheticFill)
	entries := make([]Entry, 0, syntheticFill)
	for len(entries) < syntheticFill {
		name := syntheticNames[rand.Intn(len(syntheticNames))]
		if rand.Float64() > 0.7 {
			name = fmt.Sprintf("%s%d", name, rand.Intn(100))
		}
		if used[name] {
			continue
		}
		used[name] = true
		entries = append(entries, Entry{
			Name:  name,
			Score: rand.Intn(r[1]-r[0]) + r[0],
			Date:  date,
		})
	}
	return entries
}
