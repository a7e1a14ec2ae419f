package game

// Winner identifies the side a finished game went to.
type Winner string

const (
	WinnerNone      Winner = ""
	WinnerCrew      Winner = "crew"
	WinnerImpostors Winner = "impostors"
)

// CheckVictory inspects the surviving population after an elimination.
// No impostor left alive means the crew wins. Two players left with an
// impostor among them means the impostors win: parity is enough to
// control every vote from there. Anything else continues the game.
func (g *GameState) CheckVictory() Winner {
	aliveImpostors := 0
	for id, a := range g.Assignments {
		if a.IsImpostor && !g.eliminated[id] {
			aliveImpostors++
		}
	}

	if aliveImpostors == 0 {
		return WinnerCrew
	}

	if len(g.AlivePlayers()) == 2 && aliveImpostors == 1 {
		return WinnerImpostors
	}

	return WinnerNone
}
