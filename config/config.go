package config

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Log      Log
	Trivia   Trivia
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host        string
	Port        string
	User        string
	Password    string `json:"-"`
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type Log struct {
	Level  string
	Pretty bool
}

// Trivia holds the knobs of the question endpoints.
type Trivia struct {
	QuestionsPerPage int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", true)
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "trivia")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)
	viper.SetDefault("QUESTIONS_PER_PAGE", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	switch config.Server.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		log.Warn().Str("gin_mode", config.Server.GinMode).Msg("Unknown GIN_MODE, falling back to debug")
		config.Server.GinMode = gin.DebugMode
	}
	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.AutoMigrate = viper.GetBool("DATABASE_AUTO_MIGRATE")

	config.Trivia.QuestionsPerPage = viper.GetInt("QUESTIONS_PER_PAGE")
	if config.Trivia.QuestionsPerPage <= 0 {
		config.Trivia.QuestionsPerPage = 10
	}

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

// DSN builds the postgres connection string for gorm.
func (d Database) DSN() string {
	return "host=" + d.Host +
		" port=" + d.Port +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}
