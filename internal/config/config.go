package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/gestimmob/rental-service/internal/utils"
)

const AppName = "rental-service"

type Config struct {
	AppName       string
	AppPort       string
	AppUrl        string
	DBUrl         string
	ReconcileCron string
}

// LoadConfig reads the environment (a local .env is honored when
// present) and fails fast on anything required.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found; using process environment")
	}

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	reconcileCron := os.Getenv("RECONCILE_CRON")
	if reconcileCron == "" {
		// Just after midnight, once the day's terminations are final.
		reconcileCron = "5 0 * * *"
	}

	return &Config{
		AppName:       AppName,
		AppPort:       appPort,
		AppUrl:        appUrl,
		DBUrl:         dbUrl,
		ReconcileCron: reconcileCron,
	}
}
