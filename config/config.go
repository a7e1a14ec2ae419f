package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Debug    bool           `mapstructure:"debug"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

// GameConfig holds the room defaults; the host can change impostor
// count and hint mode per room before a game starts.
type GameConfig struct {
	MinPlayers           int  `mapstructure:"min_players"`
	MaxPlayers           int  `mapstructure:"max_players"`
	DefaultImpostorCount int  `mapstructure:"default_impostor_count"`
	DefaultIncludeHint   bool `mapstructure:"default_include_hint"`
	EmptyRoomTTLSeconds  int  `mapstructure:"empty_room_ttl_seconds"`
}

// DatabaseConfig selects match-history storage. Driver is "gorm" or
// "postgres" (raw database/sql).
type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9090")
	viper.SetDefault("game.min_players", 3)
	viper.SetDefault("game.max_players", 12)
	viper.SetDefault("game.default_impostor_count", 1)
	viper.SetDefault("game.default_include_hint", false)
	viper.SetDefault("game.empty_room_ttl_seconds", 300)
	viper.SetDefault("database.driver", "gorm")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// Run on defaults when no config file is present.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
