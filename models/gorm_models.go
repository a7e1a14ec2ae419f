package models

import (
	"time"

	"gorm.io/gorm"
)

// GormMatchRecord is one finished game. Live game state is never
// persisted; only the outcome of completed matches lands here.
type GormMatchRecord struct {
	gorm.Model
	RoomCode  string `gorm:"index;not null"`
	Word      string `gorm:"not null"`
	Winner    string `gorm:"not null"` // crew / impostors
	Rounds    int    `gorm:"default:1"`
	PlayerN   int    `gorm:"not null"`
	ImpostorN int    `gorm:"not null"`
	Duration  int    `gorm:"default:0"` // seconds
}

// GormPlayerStats accumulates per-name results across matches.
type GormPlayerStats struct {
	gorm.Model
	PlayerName    string `gorm:"uniqueIndex;not null"`
	GamesPlayed   int    `gorm:"default:0"`
	Wins          int    `gorm:"default:0"`
	Losses        int    `gorm:"default:0"`
	ImpostorGames int    `gorm:"default:0"`
}

// MatchRecord is the storage-agnostic shape the services layer builds.
type MatchRecord struct {
	RoomCode  string    `json:"room_code"`
	Word      string    `json:"word"`
	Winner    string    `json:"winner"`
	Rounds    int       `json:"rounds"`
	PlayerN   int       `json:"player_n"`
	ImpostorN int       `json:"impostor_n"`
	Duration  int       `json:"duration"`
	PlayedAt  time.Time `json:"played_at"`
}

// PlayerOutcome is one player's result in one match.
type PlayerOutcome struct {
	PlayerName  string `json:"player_name"`
	Won         bool   `json:"won"`
	WasImpostor bool   `json:"was_impostor"`
}

// PlayerStats is the aggregate read model served over RPC.
type PlayerStats struct {
	PlayerName    string `json:"player_name"`
	GamesPlayed   int    `json:"games_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	ImpostorGames int    `json:"impostor_games"`
}
