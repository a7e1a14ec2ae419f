package game

import "time"

// GameState is the aggregate for one room's running game. It is built
// at start-game, mutated only by the Coordinator, and dropped when the
// room closes or a new game starts. All mutation happens on the room's
// serialized event goroutine, so the struct carries no locking.
type GameState struct {
	Assignments map[string]Assignment
	SecretWord  WordEntry
	Turns       *TurnOrder

	Round        int
	spoken       map[string]bool
	votingActive bool
	votes        map[string]Target
	eliminated   map[string]bool
	spectators   map[string]bool
	tiebreakPair []string
	StartedAt    time.Time
	ChatLog      []ChatMessage
}

// ChatMessage is one accepted clue, kept for late-joining spectators
// and the match record.
type ChatMessage struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

func newGameState(assignments map[string]Assignment, word WordEntry, turns *TurnOrder) *GameState {
	return &GameState{
		Assignments: assignments,
		SecretWord:  word,
		Turns:       turns,
		Round:       1,
		spoken:      make(map[string]bool),
		votes:       make(map[string]Target),
		eliminated:  make(map[string]bool),
		spectators:  make(map[string]bool),
		StartedAt:   time.Now(),
	}
}

// EligiblePlayers returns the players who still speak and vote: in
// turn order, not eliminated, not spectating. Recomputed on every call
// because eliminations shrink the set mid-round.
func (g *GameState) EligiblePlayers() []Player {
	var eligible []Player
	for _, p := range g.Turns.Players() {
		if !g.eliminated[p.ID] && !g.spectators[p.ID] {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// AlivePlayers returns everyone not yet eliminated.
func (g *GameState) AlivePlayers() []Player {
	var alive []Player
	for _, p := range g.Turns.Players() {
		if !g.eliminated[p.ID] {
			alive = append(alive, p)
		}
	}
	return alive
}

func (g *GameState) IsEliminated(playerID string) bool {
	return g.eliminated[playerID]
}

func (g *GameState) VotingActive() bool {
	return g.votingActive
}

// Age is how long the game has been running.
func (g *GameState) Age() time.Duration {
	return time.Since(g.StartedAt)
}

func (g *GameState) playerByID(id string) (Player, bool) {
	for _, p := range g.Turns.Players() {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
