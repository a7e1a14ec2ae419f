package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/palabra/impostor/models"
)

// PostgreSQL is the raw database/sql implementation of Database, for
// deployments that prefer explicit SQL over the ORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	p := &PostgreSQL{db: db}
	if err := p.createTables(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PostgreSQL) createTables() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS match_records (
			id SERIAL PRIMARY KEY,
			room_code TEXT NOT NULL,
			word TEXT NOT NULL,
			winner TEXT NOT NULL,
			rounds INT NOT NULL DEFAULT 1,
			player_n INT NOT NULL,
			impostor_n INT NOT NULL,
			duration INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_match_records_room ON match_records (room_code);

		CREATE TABLE IF NOT EXISTS player_stats (
			player_name TEXT PRIMARY KEY,
			games_played INT NOT NULL DEFAULT 0,
			wins INT NOT NULL DEFAULT 0,
			losses INT NOT NULL DEFAULT 0,
			impostor_games INT NOT NULL DEFAULT 0
		);
	`)
	return err
}

func (p *PostgreSQL) SaveMatch(record *models.MatchRecord) error {
	_, err := p.db.Exec(`
		INSERT INTO match_records (room_code, word, winner, rounds, player_n, impostor_n, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.RoomCode, record.Word, record.Winner,
		record.Rounds, record.PlayerN, record.ImpostorN, record.Duration)
	return err
}

func (p *PostgreSQL) SavePlayerOutcomes(outcomes []models.PlayerOutcome) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, o := range outcomes {
		win, loss, impostor := 0, 1, 0
		if o.Won {
			win, loss = 1, 0
		}
		if o.WasImpostor {
			impostor = 1
		}

		_, err := tx.Exec(`
			INSERT INTO player_stats (player_name, games_played, wins, losses, impostor_games)
			VALUES ($1, 1, $2, $3, $4)
			ON CONFLICT (player_name) DO UPDATE SET
				games_played = player_stats.games_played + 1,
				wins = player_stats.wins + $2,
				losses = player_stats.losses + $3,
				impostor_games = player_stats.impostor_games + $4`,
			o.PlayerName, win, loss, impostor)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *PostgreSQL) GetPlayerStats(playerName string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := p.db.QueryRow(`
		SELECT player_name, games_played, wins, losses, impostor_games
		FROM player_stats WHERE player_name = $1`, playerName).
		Scan(&stats.PlayerName, &stats.GamesPlayed, &stats.Wins, &stats.Losses, &stats.ImpostorGames)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (p *PostgreSQL) Leaderboard(limit int) ([]models.PlayerStats, error) {
	rows, err := p.db.Query(`
		SELECT player_name, games_played, wins, losses, impostor_games
		FROM player_stats ORDER BY wins DESC, games_played ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.PlayerStats
	for rows.Next() {
		var stats models.PlayerStats
		if err := rows.Scan(&stats.PlayerName, &stats.GamesPlayed, &stats.Wins, &stats.Losses, &stats.ImpostorGames); err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
