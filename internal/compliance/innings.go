package compliance

import (
	"sort"

	"github.com/google/uuid"
)

// Position is a tracked defensive position. Only pitcher and catcher matter to
// the safety rules.
type Position string

const (
	PositionPitcher Position = "pitcher"
	PositionCatcher Position = "catcher"
)

// AssignmentRow is one raw (player, inning, position) record from a game.
// Rows may arrive unordered and with duplicates; grouping normalizes both.
type AssignmentRow struct {
	PlayerID uuid.UUID
	Inning   int
	Position Position
}

// Innings holds one player's innings for a single game, split by position.
// Both slices are sorted ascending with duplicates collapsed.
type Innings struct {
	Pitched []int `json:"pitched"`
	Caught  []int `json:"caught"`
}

// GroupInnings buckets a game's raw assignment rows per player. Positions
// other than pitcher and catcher are ignored.
func GroupInnings(rows []AssignmentRow) map[uuid.UUID]Innings {
	byPlayer := make(map[uuid.UUID]Innings)
	for _, row := range rows {
		in := byPlayer[row.PlayerID]
		switch row.Position {
		case PositionPitcher:
			in.Pitched = append(in.Pitched, row.Inning)
		case PositionCatcher:
			in.Caught = append(in.Caught, row.Inning)
		default:
			continue
		}
		byPlayer[row.PlayerID] = in
	}
	for id, in := range byPlayer {
		in.Pitched = SortedDistinct(in.Pitched)
		in.Caught = SortedDistinct(in.Caught)
		byPlayer[id] = in
	}
	return byPlayer
}

// SortedDistinct returns a new slice with innings sorted ascending and
// duplicates removed. The input is not modified.
func SortedDistinct(innings []int) []int {
	if len(innings) == 0 {
		return nil
	}
	out := make([]int, len(innings))
	copy(out, innings)
	sort.Ints(out)

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// OfficialPitchCount converts the raw penultimate-batter count into the count
// every rule uses. The final batter's pitches are easy to under-report, so the
// official count is the count through the next-to-last batter plus one
// guaranteed pitch. A player who never pitched has an official count of zero.
func OfficialPitchCount(penultimateBatterCount int, pitchedAtAll bool) int {
	if !pitchedAtAll {
		return 0
	}
	return penultimateBatterCount + 1
}
