package services

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/persistence"
)

type fakeDatabase struct {
	matches  []*models.MatchRecord
	outcomes []models.PlayerOutcome
	stats    map[string]*models.PlayerStats
	failSave error
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{stats: make(map[string]*models.PlayerStats)}
}

func (db *fakeDatabase) SaveMatch(record *models.MatchRecord) error {
	if db.failSave != nil {
		return db.failSave
	}
	db.matches = append(db.matches, record)
	return nil
}

func (db *fakeDatabase) SavePlayerOutcomes(outcomes []models.PlayerOutcome) error {
	db.outcomes = append(db.outcomes, outcomes...)
	return nil
}

func (db *fakeDatabase) GetPlayerStats(playerName string) (*models.PlayerStats, error) {
	s, ok := db.stats[playerName]
	if !ok {
		return nil, persistence.ErrRecordNotFound
	}
	return s, nil
}

func (db *fakeDatabase) Leaderboard(limit int) ([]models.PlayerStats, error) {
	var out []models.PlayerStats
	for _, s := range db.stats {
		out = append(out, *s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (db *fakeDatabase) Close() error { return nil }

type nopEvents struct{}

func (nopEvents) WordAssignment(string, game.Assignment, []game.Player, game.Player) {}
func (nopEvents) TurnChanged(game.Player)                                            {}
func (nopEvents) ChatMessage(game.ChatMessage)                                       {}
func (nopEvents) VotingStarted([]game.Player)                                        {}
func (nopEvents) VotingTieBreak([]game.Player)                                       {}
func (nopEvents) PlayerEliminated(game.Player, bool)                                 {}
func (nopEvents) GameOver(game.Winner, string, string)                               {}

func finishedGameState(t *testing.T) *game.GameState {
	t.Helper()
	players := []game.Player{
		{ID: "a", Name: "Ana"},
		{ID: "b", Name: "Bruno"},
		{ID: "c", Name: "Carla"},
		{ID: "d", Name: "Diego"},
	}
	coord := game.NewCoordinator(nopEvents{}, rand.New(rand.NewSource(11)))
	if err := coord.Start(players, game.Config{ImpostorCount: 1}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return coord.State()
}

func TestRecordMatch_NilDatabaseIsNoOp(t *testing.T) {
	svc := NewStatsService(nil)
	if err := svc.RecordMatch("ABCDEF", finishedGameState(t), game.WinnerCrew); err != nil {
		t.Fatalf("RecordMatch without storage: %v", err)
	}
}

func TestRecordMatch_PersistsMatchAndOutcomes(t *testing.T) {
	db := newFakeDatabase()
	svc := NewStatsService(db)
	gs := finishedGameState(t)

	if err := svc.RecordMatch("ABCDEF", gs, game.WinnerCrew); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	if len(db.matches) != 1 {
		t.Fatalf("saved matches = %d, want 1", len(db.matches))
	}
	record := db.matches[0]
	if record.RoomCode != "ABCDEF" || record.Winner != "crew" {
		t.Errorf("record = %+v", record)
	}
	if record.PlayerN != 4 || record.ImpostorN != 1 {
		t.Errorf("headcount = %d/%d, want 4/1", record.PlayerN, record.ImpostorN)
	}
	if record.Word != gs.SecretWord.Word {
		t.Errorf("word = %q, want %q", record.Word, gs.SecretWord.Word)
	}

	if len(db.outcomes) != 4 {
		t.Fatalf("outcomes = %d, want 4", len(db.outcomes))
	}
	for _, o := range db.outcomes {
		if o.Won == o.WasImpostor {
			t.Errorf("crew victory outcome inconsistent: %+v", o)
		}
	}
}

func TestRecordMatch_ImpostorVictoryFlipsOutcomes(t *testing.T) {
	db := newFakeDatabase()
	svc := NewStatsService(db)

	if err := svc.RecordMatch("ABCDEF", finishedGameState(t), game.WinnerImpostors); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}
	for _, o := range db.outcomes {
		if o.Won != o.WasImpostor {
			t.Errorf("impostor victory outcome inconsistent: %+v", o)
		}
	}
}

func TestRecordMatch_SaveFailurePropagates(t *testing.T) {
	db := newFakeDatabase()
	db.failSave = errors.New("connection refused")
	svc := NewStatsService(db)

	if err := svc.RecordMatch("ABCDEF", finishedGameState(t), game.WinnerCrew); err == nil {
		t.Fatal("save failure swallowed")
	}
	if len(db.outcomes) != 0 {
		t.Error("outcomes written despite match save failure")
	}
}

func TestPlayerStats(t *testing.T) {
	db := newFakeDatabase()
	db.stats["Ana"] = &models.PlayerStats{PlayerName: "Ana", GamesPlayed: 3, Wins: 2, Losses: 1}
	svc := NewStatsService(db)

	got, err := svc.PlayerStats("Ana")
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if got.Wins != 2 {
		t.Errorf("wins = %d, want 2", got.Wins)
	}

	if _, err := svc.PlayerStats("Nadie"); !errors.Is(err, persistence.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}

	empty := NewStatsService(nil)
	if _, err := empty.PlayerStats("Ana"); !errors.Is(err, persistence.ErrRecordNotFound) {
		t.Errorf("nil-db err = %v, want ErrRecordNotFound", err)
	}
}

func TestLeaderboard_DefaultLimit(t *testing.T) {
	db := newFakeDatabase()
	db.stats["Ana"] = &models.PlayerStats{PlayerName: "Ana", Wins: 5}
	svc := NewStatsService(db)

	board, err := svc.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 1 {
		t.Errorf("board size = %d, want 1", len(board))
	}
}
