package game

import "math/rand"

// TurnOrder is the fixed speaking order, a permutation of the players
// at game start. It is never re-shuffled mid-game; eliminated players
// are skipped in place so indexes stay stable for spectators.
type TurnOrder struct {
	players []Player
	index   int
}

// NewTurnOrder shuffles the players uniformly and positions the cursor
// on the first entry.
func NewTurnOrder(players []Player, rng *rand.Rand) *TurnOrder {
	order := make([]Player, len(players))
	copy(order, players)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &TurnOrder{players: order}
}

// Current returns the player whose turn it is.
func (t *TurnOrder) Current() Player {
	return t.players[t.index]
}

// Players returns the full order, including eliminated players.
func (t *TurnOrder) Players() []Player {
	return t.players
}

// Advance moves the cursor to the next living player and returns it.
// With a single survivor it keeps returning that survivor; the caller
// guarantees at least one player is not eliminated.
func (t *TurnOrder) Advance(eliminated map[string]bool) Player {
	for i := 0; i < len(t.players); i++ {
		t.index = (t.index + 1) % len(t.players)
		if !eliminated[t.players[t.index].ID] {
			return t.players[t.index]
		}
	}
	return t.players[t.index]
}

// Reset moves the cursor back to the top of the order for a new round,
// settling on the first living player.
func (t *TurnOrder) Reset(eliminated map[string]bool) Player {
	t.index = 0
	if eliminated[t.players[0].ID] {
		return t.Advance(eliminated)
	}
	return t.players[0]
}
