package game

import (
	"math/rand"
	"testing"
)

func testPlayers(n int) []Player {
	names := []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Fausto", "Gloria", "Hugo"}
	players := make([]Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, Player{ID: string(rune('a' + i)), Name: names[i%len(names)]})
	}
	return players
}

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestAssign_ImpostorCount(t *testing.T) {
	for _, tc := range []struct {
		players   int
		impostors int
	}{
		{3, 1},
		{5, 1},
		{5, 2},
		{8, 3},
	} {
		players := testPlayers(tc.players)
		assignments, word := Assign(players, tc.impostors, false, testRng())

		if len(assignments) != tc.players {
			t.Fatalf("expected %d assignments, got %d", tc.players, len(assignments))
		}

		impostors := 0
		for _, a := range assignments {
			if a.IsImpostor {
				impostors++
			}
		}
		if impostors != tc.impostors {
			t.Errorf("%d players / %d impostors: got %d impostors", tc.players, tc.impostors, impostors)
		}

		if word.Word == "" {
			t.Error("expected a non-empty secret word")
		}
	}
}

func TestAssign_FivePlayersOneImpostorNoHint(t *testing.T) {
	players := testPlayers(5)
	assignments, word := Assign(players, 1, false, testRng())

	impostorSeen := 0
	for id, a := range assignments {
		if a.IsImpostor {
			impostorSeen++
			if a.Word != "" {
				t.Errorf("impostor %s received the word %q", id, a.Word)
			}
			if a.Hint != "" {
				t.Errorf("impostor %s received a hint with hints disabled", id)
			}
		} else {
			if a.Word != word.Word {
				t.Errorf("crew member %s got word %q, want %q", id, a.Word, word.Word)
			}
			if a.Hint != "" {
				t.Errorf("crew member %s received a hint", id)
			}
		}
	}

	if impostorSeen != 1 {
		t.Fatalf("expected exactly 1 impostor, got %d", impostorSeen)
	}
}

func TestAssign_HintOnlyForImpostors(t *testing.T) {
	players := testPlayers(6)
	assignments, word := Assign(players, 2, true, testRng())

	for id, a := range assignments {
		if a.IsImpostor {
			if a.Hint != word.Hint {
				t.Errorf("impostor %s got hint %q, want %q", id, a.Hint, word.Hint)
			}
		} else if a.Hint != "" {
			t.Errorf("crew member %s received a hint", id)
		}
	}
}

func TestAssign_Deterministic(t *testing.T) {
	players := testPlayers(5)

	first, firstWord := Assign(players, 2, true, rand.New(rand.NewSource(7)))
	second, secondWord := Assign(players, 2, true, rand.New(rand.NewSource(7)))

	if firstWord != secondWord {
		t.Fatalf("same seed picked different words: %v vs %v", firstWord, secondWord)
	}
	for id, a := range first {
		if second[id] != a {
			t.Errorf("same seed produced different assignment for %s", id)
		}
	}
}

func TestRandomWord_FromCatalog(t *testing.T) {
	rng := testRng()
	for i := 0; i < 50; i++ {
		entry := RandomWord(rng)
		found := false
		for _, e := range WordCatalog {
			if e == entry {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("RandomWord returned %v, not in catalog", entry)
		}
	}
}
