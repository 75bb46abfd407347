// Package config loads server configuration from flags and the environment.
package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	Port   int
	DBPath string

	// JWTSecret signs session tokens. Required; there is no safe default.
	JWTSecret     string
	TokenDuration time.Duration

	// ReminderInterval is how often the dispatcher polls for due reminders.
	ReminderInterval time.Duration
}

// Load parses flags with environment fallbacks. A .env file in the working
// directory is honored when present, matching local development setups.
func Load(args []string) (Config, error) {
	// Missing .env is the normal case in deployments.
	_ = godotenv.Load()

	var cfg Config
	var tokenHours, reminderSeconds int

	fs := flag.NewFlagSet("billbuddy", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DBPath, "d", "", "SQLite database path")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.IntVar(&tokenHours, "token-hours", 0, "Session token lifetime in hours")
	fs.IntVar(&reminderSeconds, "reminder-interval", 0, "Reminder poll interval in seconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("DB_PATH")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/billbuddy.db"
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required (use -jwt-secret or JWT_SECRET env)")
	}

	if tokenHours == 0 {
		if hoursStr := os.Getenv("TOKEN_HOURS"); hoursStr != "" {
			hours, err := strconv.Atoi(hoursStr)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_HOURS env variable")
			}
			tokenHours = hours
		} else {
			tokenHours = 24
		}
	}
	cfg.TokenDuration = time.Duration(tokenHours) * time.Hour

	if reminderSeconds == 0 {
		if secStr := os.Getenv("REMINDER_INTERVAL_SECONDS"); secStr != "" {
			sec, err := strconv.Atoi(secStr)
			if err != nil {
				return Config{}, errors.New("invalid REMINDER_INTERVAL_SECONDS env variable")
			}
			reminderSeconds = sec
		} else {
			reminderSeconds = 60
		}
	}
	cfg.ReminderInterval = time.Duration(reminderSeconds) * time.Second

	return cfg, nil
}
