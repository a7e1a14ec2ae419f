package game

import "testing"

func impostorIDs(gs *GameState) []string {
	var out []string
	for id, a := range gs.Assignments {
		if a.IsImpostor {
			out = append(out, id)
		}
	}
	return out
}

func crewIDs(gs *GameState) []string {
	var out []string
	for id, a := range gs.Assignments {
		if !a.IsImpostor {
			out = append(out, id)
		}
	}
	return out
}

func TestCheckVictory_CrewWinsWhenImpostorsGone(t *testing.T) {
	gs := newTestState(t, 5, 1)

	if got := gs.CheckVictory(); got != WinnerNone {
		t.Fatalf("fresh game already decided: %q", got)
	}

	for _, id := range impostorIDs(gs) {
		gs.EliminatePlayer(id)
	}

	if got := gs.CheckVictory(); got != WinnerCrew {
		t.Errorf("winner = %q, want %q", got, WinnerCrew)
	}
	// Re-checking unchanged state gives the same verdict.
	if got := gs.CheckVictory(); got != WinnerCrew {
		t.Errorf("repeated check = %q, want %q", got, WinnerCrew)
	}
}

func TestCheckVictory_ImpostorParity(t *testing.T) {
	gs := newTestState(t, 5, 1)
	crew := crewIDs(gs)

	// Knock the crew down to one: two alive, one of them the impostor.
	gs.EliminatePlayer(crew[0])
	if got := gs.CheckVictory(); got != WinnerNone {
		t.Fatalf("decided at 4 alive: %q", got)
	}
	gs.EliminatePlayer(crew[1])
	if got := gs.CheckVictory(); got != WinnerNone {
		t.Fatalf("decided at 3 alive: %q", got)
	}
	gs.EliminatePlayer(crew[2])

	if got := gs.CheckVictory(); got != WinnerImpostors {
		t.Errorf("winner = %q, want %q", got, WinnerImpostors)
	}
}

func TestCheckVictory_TwoImpostorsNoParityCall(t *testing.T) {
	gs := newTestState(t, 6, 2)
	crew := crewIDs(gs)
	impostors := impostorIDs(gs)

	// Three alive, two of them impostors: not the parity shape, and the
	// crew can still win by voting out both.
	gs.EliminatePlayer(crew[0])
	gs.EliminatePlayer(crew[1])
	gs.EliminatePlayer(crew[2])

	if got := gs.CheckVictory(); got != WinnerNone {
		t.Fatalf("winner = %q, want ongoing game", got)
	}

	gs.EliminatePlayer(impostors[0])
	gs.EliminatePlayer(impostors[1])

	if got := gs.CheckVictory(); got != WinnerCrew {
		t.Errorf("winner = %q, want %q", got, WinnerCrew)
	}
}
