package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the ledger daemon. Everything is
// optional except the database: without REDIS_URL the ledger runs
// local-only, without TELEGRAM_TOKEN reminders only hit the log.
type Config struct {
	DatabaseURL         string
	RedisURL            string
	UserID              string
	TelegramToken       string
	TelegramChatID      int64
	ReminderInterval    time.Duration
	EventSyncInterval   time.Duration
	ReflectionNudgeTime string // "HH:MM", empty disables the nudge
}

// Load reads configuration from the environment (and .env if present) with
// sane defaults.
func Load() (Config, error) {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:            strings.TrimSpace(os.Getenv("REDIS_URL")),
		UserID:              strings.TrimSpace(os.Getenv("USER_ID")),
		TelegramToken:       strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramChatID:      parseInt64(os.Getenv("TELEGRAM_CHAT_ID")),
		ReminderInterval:    parseSeconds(os.Getenv("REMINDER_INTERVAL_SECONDS")),
		EventSyncInterval:   parseSeconds(os.Getenv("EVENT_SYNC_INTERVAL_SECONDS")),
		ReflectionNudgeTime: strings.TrimSpace(os.Getenv("REFLECTION_NUDGE_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "productivity_ledger.db"
	}
	if cfg.ReminderInterval == 0 {
		cfg.ReminderInterval = 60 * time.Second
	}
	if cfg.EventSyncInterval == 0 {
		cfg.EventSyncInterval = 5 * time.Minute
	}

	return cfg, nil
}

func parseSeconds(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func parseInt64(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
