package game

import (
	"errors"
	"math/rand"
	"time"
)

// Config is the per-game surface the host controls.
type Config struct {
	ImpostorCount int  `json:"impostorCount"`
	IncludeHint   bool `json:"includeHint"`
}

// Rejected operations. These are the caller's precondition failures,
// never process faults: state is unchanged when one is returned.
var (
	ErrImpostorCount    = errors.New("impostor count must be positive and below the player count")
	ErrNoActiveGame     = errors.New("no active game")
	ErrGameOver         = errors.New("the game is over")
	ErrOutOfTurn        = errors.New("not your turn")
	ErrNotEligible      = errors.New("player is not eligible")
	ErrVotingInProgress = errors.New("voting is in progress")
	ErrVotingClosed     = errors.New("voting is not open")
	ErrInvalidTarget    = errors.New("invalid vote target")
)

// Events is the outbound boundary. The room layer implements it on top
// of the broadcaster; the core stays transport-agnostic. WordAssignment
// is the one per-player delivery: assignments are never broadcast.
type Events interface {
	WordAssignment(playerID string, assignment Assignment, order []Player, current Player)
	TurnChanged(current Player)
	ChatMessage(msg ChatMessage)
	VotingStarted(eligible []Player)
	VotingTieBreak(tied []Player)
	PlayerEliminated(p Player, wasImpostor bool)
	GameOver(winner Winner, word string, reason string)
}

// Coordinator owns one room's GameState and is the only entity with
// mutation rights over it. The room's serialized event goroutine is
// the sole caller, so no locking here.
type Coordinator struct {
	state  *GameState
	events Events
	rng    *rand.Rand
	winner Winner
}

// NewCoordinator builds a coordinator for one game. A nil rng gets a
// time-seeded source; tests inject a deterministic one.
func NewCoordinator(events Events, rng *rand.Rand) *Coordinator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Coordinator{events: events, rng: rng}
}

// Start runs role assignment and turn shuffling, then delivers each
// player's assignment privately along with the public turn order.
func (c *Coordinator) Start(players []Player, cfg Config) error {
	if cfg.ImpostorCount <= 0 || cfg.ImpostorCount >= len(players) {
		return ErrImpostorCount
	}

	assignments, word := Assign(players, cfg.ImpostorCount, cfg.IncludeHint, c.rng)
	turns := NewTurnOrder(players, c.rng)
	c.state = newGameState(assignments, word, turns)
	c.winner = WinnerNone

	current := turns.Current()
	for _, p := range players {
		c.events.WordAssignment(p.ID, assignments[p.ID], turns.Players(), current)
	}
	return nil
}

// HandleChat processes one chat submission: turn enforcement, message
// tracking, turn advance, and the discussion-to-voting transition once
// every eligible player has spoken.
func (c *Coordinator) HandleChat(playerID, text string) error {
	if c.state == nil {
		return ErrNoActiveGame
	}
	if c.winner != WinnerNone {
		return ErrGameOver
	}
	if c.state.VotingActive() {
		return ErrVotingInProgress
	}

	current := c.state.Turns.Current()
	if current.ID != playerID {
		return ErrOutOfTurn
	}

	msg := ChatMessage{
		PlayerID:   playerID,
		PlayerName: current.Name,
		Text:       text,
		Timestamp:  time.Now(),
	}
	c.state.ChatLog = append(c.state.ChatLog, msg)
	c.events.ChatMessage(msg)

	complete := c.state.TrackMessage(playerID)

	next := c.state.Turns.Advance(c.state.eliminated)
	c.events.TurnChanged(next)

	if complete {
		c.state.StartVoting()
		c.events.VotingStarted(c.state.EligiblePlayers())
	}
	return nil
}

// HandleVote processes one ballot entry and, once the ballot is
// complete, resolves it: elimination and victory check, tie-break
// re-vote, or a plain skip into the next round.
func (c *Coordinator) HandleVote(voterID string, target Target) error {
	if c.state == nil {
		return ErrNoActiveGame
	}
	if c.winner != WinnerNone {
		return ErrGameOver
	}
	if !c.state.VotingActive() {
		return ErrVotingClosed
	}
	if !c.isEligible(voterID) {
		return ErrNotEligible
	}
	if !c.validTarget(target) {
		return ErrInvalidTarget
	}

	if !c.state.SubmitVote(voterID, target) {
		return nil
	}

	c.resolveBallot()
	return nil
}

// resolveBallot runs the tally once every eligible vote is in and acts
// on the outcome: tie-break re-vote, skip into the next round, or
// elimination followed by the victory check.
func (c *Coordinator) resolveBallot() {
	result := c.state.CalculateResults()

	if result.TieBreak {
		c.state.restrictToTiebreak(result.Tied)
		tied := make([]Player, 0, len(result.Tied))
		for _, id := range result.Tied {
			if p, ok := c.state.playerByID(id); ok {
				tied = append(tied, p)
			}
		}
		c.events.VotingTieBreak(tied)
		return
	}

	if result.Winner.IsSkip() {
		c.nextRound()
		return
	}

	eliminatedPlayer, _ := c.state.playerByID(result.Winner.PlayerID)
	wasImpostor := c.state.Assignments[eliminatedPlayer.ID].IsImpostor
	c.state.EliminatePlayer(eliminatedPlayer.ID)
	c.events.PlayerEliminated(eliminatedPlayer, wasImpostor)

	switch winner := c.state.CheckVictory(); winner {
	case WinnerCrew:
		c.finish(winner, "all impostors eliminated")
	case WinnerImpostors:
		c.finish(winner, "impostors reached parity")
	default:
		c.nextRound()
	}
}

// HandleLeave treats a mid-game departure as an elimination so every
// completion denominator stays sound. It may complete the current
// round or ballot, or end the game outright.
func (c *Coordinator) HandleLeave(playerID string) {
	if c.state == nil || c.winner != WinnerNone {
		return
	}
	if _, ok := c.state.playerByID(playerID); !ok {
		return
	}
	if c.state.IsEliminated(playerID) {
		return
	}

	wasCurrent := !c.state.VotingActive() && c.state.Turns.Current().ID == playerID
	c.state.EliminatePlayer(playerID)

	if len(c.state.AlivePlayers()) == 0 {
		return
	}

	switch winner := c.state.CheckVictory(); winner {
	case WinnerCrew:
		c.finish(winner, "all impostors eliminated")
		return
	case WinnerImpostors:
		c.finish(winner, "impostors reached parity")
		return
	}

	if c.state.VotingActive() {
		if c.state.BallotComplete() {
			c.resolveBallot()
		}
		return
	}

	if wasCurrent {
		c.events.TurnChanged(c.state.Turns.Advance(c.state.eliminated))
	}
	if c.state.RoundComplete() {
		c.state.StartVoting()
		c.events.VotingStarted(c.state.EligiblePlayers())
	}
}

func (c *Coordinator) isEligible(playerID string) bool {
	for _, p := range c.state.EligiblePlayers() {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func (c *Coordinator) validTarget(target Target) bool {
	if !c.state.validTiebreakTarget(target) {
		return false
	}
	if target.IsSkip() {
		return true
	}
	if _, ok := c.state.playerByID(target.PlayerID); !ok {
		return false
	}
	return !c.state.IsEliminated(target.PlayerID)
}

func (c *Coordinator) nextRound() {
	next := c.state.ResetRound()
	c.events.TurnChanged(next)
}

func (c *Coordinator) finish(winner Winner, reason string) {
	c.winner = winner
	c.events.GameOver(winner, c.state.SecretWord.Word, reason)
}

// State exposes the aggregate for the room layer and the match
// recorder. Callers must not mutate it.
func (c *Coordinator) State() *GameState {
	return c.state
}

// Winner returns the decided side, or WinnerNone while the game runs.
func (c *Coordinator) Winner() Winner {
	return c.winner
}

// Finished reports whether a victory has been declared.
func (c *Coordinator) Finished() bool {
	return c.winner != WinnerNone
}
