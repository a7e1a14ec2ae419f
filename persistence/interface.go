package persistence

import (
	"errors"

	"github.com/palabra/impostor/models"
)

// Database records finished matches and aggregates per-player results.
// Live game state never goes through here; a restart loses in-flight
// games by design.
type Database interface {
	SaveMatch(record *models.MatchRecord) error
	SavePlayerOutcomes(outcomes []models.PlayerOutcome) error
	GetPlayerStats(playerName string) (*models.PlayerStats, error)
	Leaderboard(limit int) ([]models.PlayerStats, error)
	Close() error
}

var ErrRecordNotFound = errors.New("record not found")
