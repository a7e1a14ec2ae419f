package services

import (
	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/persistence"
)

// StatsService turns finished games into match records and per-player
// tallies. A nil database disables recording entirely; the game runs
// fine without it.
type StatsService struct {
	db persistence.Database
}

func NewStatsService(db persistence.Database) *StatsService {
	return &StatsService{db: db}
}

// RecordMatch persists one settled game: the match row plus every
// player's outcome. Impostors win when the impostor side does, crew
// when the crew does.
func (s *StatsService) RecordMatch(roomCode string, gs *game.GameState, winner game.Winner) error {
	if s.db == nil || gs == nil {
		return nil
	}

	impostorN := 0
	for _, a := range gs.Assignments {
		if a.IsImpostor {
			impostorN++
		}
	}

	record := &models.MatchRecord{
		RoomCode:  roomCode,
		Word:      gs.SecretWord.Word,
		Winner:    string(winner),
		Rounds:    gs.Round,
		PlayerN:   len(gs.Assignments),
		ImpostorN: impostorN,
		Duration:  int(gs.Age().Seconds()),
		PlayedAt:  gs.StartedAt,
	}
	if err := s.db.SaveMatch(record); err != nil {
		return err
	}

	outcomes := make([]models.PlayerOutcome, 0, len(gs.Assignments))
	for _, p := range gs.Turns.Players() {
		a := gs.Assignments[p.ID]
		won := (a.IsImpostor && winner == game.WinnerImpostors) ||
			(!a.IsImpostor && winner == game.WinnerCrew)
		outcomes = append(outcomes, models.PlayerOutcome{
			PlayerName:  p.Name,
			Won:         won,
			WasImpostor: a.IsImpostor,
		})
	}
	return s.db.SavePlayerOutcomes(outcomes)
}

// PlayerStats reads one player's lifetime tally.
func (s *StatsService) PlayerStats(playerName string) (*models.PlayerStats, error) {
	if s.db == nil {
		return nil, persistence.ErrRecordNotFound
	}
	return s.db.GetPlayerStats(playerName)
}

// Leaderboard lists the top players by wins.
func (s *StatsService) Leaderboard(limit int) ([]models.PlayerStats, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.db.Leaderboard(limit)
}
