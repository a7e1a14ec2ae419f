package game

import (
	"testing"
)

// newTestState builds a game with a fixed-seed shuffle so tests can
// rely on the resulting order via Turns.Players().
func newTestState(t *testing.T, players int, impostors int) *GameState {
	t.Helper()
	rng := testRng()
	roster := testPlayers(players)
	assignments, word := Assign(roster, impostors, false, rng)
	return newGameState(assignments, word, NewTurnOrder(roster, rng))
}

func ids(players []Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

func TestTrackMessage_Idempotent(t *testing.T) {
	gs := newTestState(t, 4, 1)
	speaker := gs.Turns.Players()[0].ID

	if gs.TrackMessage(speaker) {
		t.Fatal("round complete after a single speaker")
	}
	if gs.TrackMessage(speaker) {
		t.Fatal("same speaker counted twice")
	}
}

func TestTrackMessage_CompletesRound(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())

	for i, id := range order {
		complete := gs.TrackMessage(id)
		if i < len(order)-1 && complete {
			t.Fatalf("round completed early at speaker %d", i)
		}
		if i == len(order)-1 && !complete {
			t.Fatal("round not complete after everyone spoke")
		}
	}
}

func TestTrackMessage_EligibilityShrinksMidRound(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())

	gs.TrackMessage(order[0])
	gs.TrackMessage(order[1])
	gs.EliminatePlayer(order[3])

	// With the fourth player out, the third voice completes the round.
	if !gs.TrackMessage(order[2]) {
		t.Fatal("expected round completion with shrunken eligible set")
	}
}

func TestSubmitVote_RejectedWhileClosed(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())

	if gs.SubmitVote(order[0], SkipTarget()) {
		t.Fatal("vote accepted while voting closed")
	}
	if len(gs.votes) != 0 {
		t.Fatal("closed ballot recorded a vote")
	}
}

func TestSubmitVote_RevoteOverwrites(t *testing.T) {
	gs := newTestState(t, 3, 1)
	order := ids(gs.Turns.Players())
	gs.StartVoting()

	gs.SubmitVote(order[0], PlayerTarget(order[1]))
	gs.SubmitVote(order[0], SkipTarget())

	if len(gs.votes) != 1 {
		t.Fatalf("expected 1 recorded vote, got %d", len(gs.votes))
	}
	if got := gs.votes[order[0]]; !got.IsSkip() {
		t.Errorf("re-vote did not overwrite: %v", got)
	}
}

func TestSubmitVote_CompletionSignal(t *testing.T) {
	gs := newTestState(t, 3, 1)
	order := ids(gs.Turns.Players())
	gs.StartVoting()

	if gs.SubmitVote(order[0], SkipTarget()) {
		t.Fatal("ballot complete after one of three votes")
	}
	if gs.SubmitVote(order[1], SkipTarget()) {
		t.Fatal("ballot complete after two of three votes")
	}
	if !gs.SubmitVote(order[2], SkipTarget()) {
		t.Fatal("ballot not complete after all votes in")
	}
}

func castVotes(gs *GameState, votes map[string]Target) {
	gs.StartVoting()
	for voter, target := range votes {
		gs.SubmitVote(voter, target)
	}
}

func TestCalculateResults_ClearWinner(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())
	x, y := order[0], order[1]

	// X has 2 votes (max), Y and skip have 1 each and are discarded.
	castVotes(gs, map[string]Target{
		order[0]: PlayerTarget(x),
		order[1]: PlayerTarget(x),
		order[2]: SkipTarget(),
		order[3]: PlayerTarget(y),
	})

	result := gs.CalculateResults()
	if result.TieBreak {
		t.Fatal("unexpected tie-break")
	}
	if result.Winner != PlayerTarget(x) {
		t.Errorf("winner = %v, want %s", result.Winner, x)
	}
}

func TestCalculateResults_TwoWayTie(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())
	x, y := order[0], order[1]

	castVotes(gs, map[string]Target{
		order[0]: PlayerTarget(x),
		order[1]: PlayerTarget(x),
		order[2]: PlayerTarget(y),
		order[3]: PlayerTarget(y),
	})

	result := gs.CalculateResults()
	if !result.TieBreak {
		t.Fatal("expected tie-break for a two-way non-skip tie")
	}
	if result.Winner != (Target{}) {
		t.Errorf("tie-break carried a winner: %v", result.Winner)
	}
	if len(result.Tied) != 2 {
		t.Fatalf("expected 2 tied targets, got %v", result.Tied)
	}
	tied := map[string]bool{result.Tied[0]: true, result.Tied[1]: true}
	if !tied[x] || !tied[y] {
		t.Errorf("tied pair %v, want %s and %s", result.Tied, x, y)
	}
}

func TestCalculateResults_SkipDominatesTies(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())
	x := order[0]

	castVotes(gs, map[string]Target{
		order[0]: PlayerTarget(x),
		order[1]: PlayerTarget(x),
		order[2]: SkipTarget(),
		order[3]: SkipTarget(),
	})

	result := gs.CalculateResults()
	if result.TieBreak {
		t.Fatal("skip tie must not trigger a tie-break")
	}
	if !result.Winner.IsSkip() {
		t.Errorf("winner = %v, want skip", result.Winner)
	}
}

func TestCalculateResults_ThreeWayTieCollapsesToSkip(t *testing.T) {
	gs := newTestState(t, 6, 1)
	order := ids(gs.Turns.Players())
	x, y, z := order[0], order[1], order[2]

	castVotes(gs, map[string]Target{
		order[0]: PlayerTarget(x),
		order[1]: PlayerTarget(x),
		order[2]: PlayerTarget(y),
		order[3]: PlayerTarget(y),
		order[4]: PlayerTarget(z),
		order[5]: PlayerTarget(z),
	})

	result := gs.CalculateResults()
	if result.TieBreak {
		t.Fatal("three-way tie must not trigger a tie-break")
	}
	if !result.Winner.IsSkip() {
		t.Errorf("winner = %v, want skip", result.Winner)
	}
}

func TestCalculateResults_SingleVotesDiscarded(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())

	// Four lone accusations: nothing reaches two votes, outcome is skip.
	castVotes(gs, map[string]Target{
		order[0]: PlayerTarget(order[1]),
		order[1]: PlayerTarget(order[2]),
		order[2]: PlayerTarget(order[3]),
		order[3]: PlayerTarget(order[0]),
	})

	result := gs.CalculateResults()
	if result.TieBreak {
		t.Fatal("unexpected tie-break")
	}
	if !result.Winner.IsSkip() {
		t.Errorf("winner = %v, want skip when no target reaches two votes", result.Winner)
	}
}

func TestEliminatePlayer_BecomesSpectator(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())

	gs.EliminatePlayer(order[0])

	if !gs.IsEliminated(order[0]) {
		t.Fatal("player not marked eliminated")
	}
	for _, p := range gs.EligiblePlayers() {
		if p.ID == order[0] {
			t.Fatal("eliminated player still eligible")
		}
	}
	if len(gs.EligiblePlayers()) != 3 {
		t.Errorf("eligible count = %d, want 3", len(gs.EligiblePlayers()))
	}
}

func TestResetRound_ClearsStateAndAdvancesCounter(t *testing.T) {
	gs := newTestState(t, 4, 1)
	order := ids(gs.Turns.Players())

	gs.TrackMessage(order[0])
	gs.StartVoting()
	gs.SubmitVote(order[0], SkipTarget())

	next := gs.ResetRound()

	if gs.Round != 2 {
		t.Errorf("round = %d, want 2", gs.Round)
	}
	if gs.VotingActive() {
		t.Error("voting still active after reset")
	}
	if len(gs.votes) != 0 || len(gs.spoken) != 0 {
		t.Error("reset left stale votes or spoken entries")
	}
	if next.ID != order[0] {
		t.Errorf("reset speaker = %s, want top of order %s", next.ID, order[0])
	}
}
