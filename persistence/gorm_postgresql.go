package persistence

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/palabra/impostor/models"
)

// GormPostgreSQL is the default Database implementation.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.AutoMigrate(&models.GormMatchRecord{}, &models.GormPlayerStats{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveMatch(record *models.MatchRecord) error {
	row := models.GormMatchRecord{
		RoomCode:  record.RoomCode,
		Word:      record.Word,
		Winner:    record.Winner,
		Rounds:    record.Rounds,
		PlayerN:   record.PlayerN,
		ImpostorN: record.ImpostorN,
		Duration:  record.Duration,
	}
	return g.db.Create(&row).Error
}

// SavePlayerOutcomes upserts every player's tally in one transaction
// so a crash can't record half a match.
func (g *GormPostgreSQL) SavePlayerOutcomes(outcomes []models.PlayerOutcome) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		for _, o := range outcomes {
			var row models.GormPlayerStats
			err := tx.Where("player_name = ?", o.PlayerName).First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row = models.GormPlayerStats{PlayerName: o.PlayerName}
			} else if err != nil {
				return err
			}

			row.GamesPlayed++
			if o.Won {
				row.Wins++
			} else {
				row.Losses++
			}
			if o.WasImpostor {
				row.ImpostorGames++
			}

			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *GormPostgreSQL) GetPlayerStats(playerName string) (*models.PlayerStats, error) {
	var row models.GormPlayerStats
	err := g.db.Where("player_name = ?", playerName).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return statsFromRow(&row), nil
}

func (g *GormPostgreSQL) Leaderboard(limit int) ([]models.PlayerStats, error) {
	var rows []models.GormPlayerStats
	err := g.db.Order("wins DESC, games_played ASC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]models.PlayerStats, 0, len(rows))
	for i := range rows {
		stats = append(stats, *statsFromRow(&rows[i]))
	}
	return stats, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func statsFromRow(row *models.GormPlayerStats) *models.PlayerStats {
	return &models.PlayerStats{
		PlayerName:    row.PlayerName,
		GamesPlayed:   row.GamesPlayed,
		Wins:          row.Wins,
		Losses:        row.Losses,
		ImpostorGames: row.ImpostorGames,
	}
}
