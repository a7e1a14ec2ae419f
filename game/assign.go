package game

import "math/rand"

// Player is a read-only reference to a room member. The room directory
// owns the data; the core never mutates it.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment is one player's secret role for the current game. Crew
// members get the word and no hint; impostors get no word and, when
// the room enables it, the hint. Empty string means absent.
type Assignment struct {
	IsImpostor bool   `json:"isImpostor"`
	Word       string `json:"word,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// Assign picks the secret word and builds one Assignment per player,
// with impostorCount impostors chosen uniformly without replacement.
// The caller guarantees 0 < impostorCount < len(players); out-of-range
// values are a caller bug, not a runtime condition handled here.
func Assign(players []Player, impostorCount int, includeHint bool, rng *rand.Rand) (map[string]Assignment, WordEntry) {
	entry := RandomWord(rng)

	impostors := make(map[string]bool, impostorCount)
	for _, i := range rng.Perm(len(players))[:impostorCount] {
		impostors[players[i].ID] = true
	}

	assignments := make(map[string]Assignment, len(players))
	for _, p := range players {
		if impostors[p.ID] {
			a := Assignment{IsImpostor: true}
			if includeHint {
				a.Hint = entry.Hint
			}
			assignments[p.ID] = a
		} else {
			assignments[p.ID] = Assignment{Word: entry.Word}
		}
	}

	return assignments, entry
}
