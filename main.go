package main

import (
	"github.com/palabra/impostor/config"
	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/persistence"
	"github.com/palabra/impostor/server"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Init(cfg.Debug)
	defer logger.Sync()

	// Match history is optional; the game itself is memory-only.
	var db persistence.Database
	if cfg.Database.Enabled {
		pg := cfg.Database.Postgres
		switch cfg.Database.Driver {
		case "postgres":
			db, err = persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		default:
			db, err = persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		}
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
	} else {
		logger.Log.Info("Match recording disabled, running memory-only.")
	}

	gameServer := server.NewGameServer(cfg, db)

	logger.Log.Infof("Starting impostor server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
