package game

// VoteResult is the derived outcome of one completed ballot. When
// TieBreak is set there is no winner yet and Tied names the pair the
// re-vote is restricted to. Otherwise Winner is a player or skip.
type VoteResult struct {
	Winner   Target
	Tally    map[Target]int
	TieBreak bool
	Tied     []string
}

// TrackMessage records that a player sent their clue this round and
// reports whether every eligible player has now spoken. Set semantics:
// a second message from the same player does not count twice.
func (g *GameState) TrackMessage(playerID string) bool {
	g.spoken[playerID] = true
	return g.RoundComplete()
}

// RoundComplete reports whether every eligible player has spoken this
// round. Eligibility is recomputed on the spot: an elimination can
// complete a round without a new message.
func (g *GameState) RoundComplete() bool {
	for _, p := range g.EligiblePlayers() {
		if !g.spoken[p.ID] {
			return false
		}
	}
	return true
}

// StartVoting opens the ballot with a clean vote map. The caller is
// responsible for the entry condition (round messages complete).
func (g *GameState) StartVoting() {
	g.votingActive = true
	g.votes = make(map[string]Target)
	g.tiebreakPair = nil
}

// restrictToTiebreak clears the ballot and limits valid targets to the
// two tied players for the re-vote.
func (g *GameState) restrictToTiebreak(tied []string) {
	g.votes = make(map[string]Target)
	g.tiebreakPair = tied
}

// validTiebreakTarget reports whether a target is allowed under an
// active tie-break restriction.
func (g *GameState) validTiebreakTarget(target Target) bool {
	if g.tiebreakPair == nil {
		return true
	}
	if target.IsSkip() {
		return false
	}
	for _, id := range g.tiebreakPair {
		if id == target.PlayerID {
			return true
		}
	}
	return false
}

// SubmitVote records or overwrites a voter's choice and reports
// whether every eligible voter has now voted. It is a no-op returning
// false while voting is closed.
func (g *GameState) SubmitVote(voterID string, target Target) bool {
	if !g.votingActive {
		return false
	}

	g.votes[voterID] = target
	return g.BallotComplete()
}

// BallotComplete reports whether every eligible voter has voted.
func (g *GameState) BallotComplete() bool {
	if !g.votingActive {
		return false
	}
	for _, p := range g.EligiblePlayers() {
		if _, ok := g.votes[p.ID]; !ok {
			return false
		}
	}
	return true
}

// CalculateResults tallies the completed ballot.
//
// Policy, in order: targets with exactly one vote are discarded (a
// lone accusation needs corroboration); if nothing reaches two votes
// the outcome is skip; a unique maximum wins; skip wins any tie it is
// part of; a tie between exactly two players triggers a restricted
// re-vote; a tie between three or more collapses to skip.
func (g *GameState) CalculateResults() VoteResult {
	tally := make(map[Target]int)
	for _, target := range g.votes {
		tally[target]++
	}

	max := 0
	for _, count := range tally {
		if count >= 2 && count > max {
			max = count
		}
	}

	if max == 0 {
		return VoteResult{Winner: SkipTarget(), Tally: tally}
	}

	var tied []Target
	for target, count := range tally {
		if count == max {
			tied = append(tied, target)
		}
	}

	if len(tied) == 1 {
		return VoteResult{Winner: tied[0], Tally: tally}
	}

	for _, t := range tied {
		if t.IsSkip() {
			return VoteResult{Winner: SkipTarget(), Tally: tally}
		}
	}

	if len(tied) == 2 {
		return VoteResult{
			Tally:    tally,
			TieBreak: true,
			Tied:     []string{tied[0].PlayerID, tied[1].PlayerID},
		}
	}

	return VoteResult{Winner: SkipTarget(), Tally: tally}
}

// EliminatePlayer marks a player eliminated and spectating. Spectators
// stay visible in the turn order but drop out of every eligibility
// denominator from the next computation on.
func (g *GameState) EliminatePlayer(playerID string) {
	g.eliminated[playerID] = true
	g.spectators[playerID] = true
	// Their pending vote no longer counts toward any denominator.
	delete(g.votes, playerID)
}

// ResetRound clears the spoken set and ballot, closes voting, bumps
// the round counter, and re-synchronizes the turn cursor to the top of
// the order.
func (g *GameState) ResetRound() Player {
	g.spoken = make(map[string]bool)
	g.votes = make(map[string]Target)
	g.tiebreakPair = nil
	g.votingActive = false
	g.Round++
	return g.Turns.Reset(g.eliminated)
}
