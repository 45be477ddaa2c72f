// internal/daily/share.go
//
// Share-text generation for daily results. The service supplies the text;
// transport (clipboard, social intents) belongs to the client.

package daily

import (
	"fmt"
	"strings"
)

var slotNames = [3]string{"Easy", "Medium", "Hard"}

// Stars renders the per-slot rating: three stars for a no-hint solve,
// fewer with hints, a cross for a skip or failure.
func Stars(hintsUsed int, solved bool) string {
	switch {
	case !solved:
		return "❌"
	case hintsUsed == 0:
		return "⭐⭐⭐"
	case hintsUsed == 1:
		return "⭐⭐"
	default:
		return "⭐"
	}
}

// ShareText renders the daily summary for sharing.
func ShareText(p Progress, dayIndex, streak int, origin string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Frequency Zero - Day %d\n\n", dayIndex+1)

	for i, solved := range p.Puzzles {
		done := solved != nil && *solved
		line := fmt.Sprintf("%s: %s", slotNames[i], Stars(p.HintsUsed[i], done))
		if done {
			switch p.HintsUsed[i] {
			case 0:
				line += " (no hints!)"
			case 1:
				line += " (1 hint)"
			default:
				line += fmt.Sprintf(" (%d hints)", p.HintsUsed[i])
			}
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\nScore: %d | Streak: 🔥%d\n", p.TotalScore(), streak)
	if origin != "" {
		fmt.Fprintf(&b, "\nPlay at: %s", origin)
	}
	return b.String()
}
