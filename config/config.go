// Package config loads process settings from the environment, with an
// optional .env file applied first.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings holds every runtime setting the digest needs. A Settings value is
// loaded once at startup and passed into each component that needs it.
type Settings struct {
	DeepSeekAPIKey   string
	SMTPSender       string
	SMTPAppPassword  string
	SMTPTo           string
	GoogleFolderName string
	GoogleFolderID   string
	TZSchedule       string
	DocMode          string
	FeedsPath        string
}

// Defaults returns a Settings with all default values set. Credentials have
// no defaults; a missing credential surfaces as an auth failure downstream.
func Defaults() Settings {
	return Settings{
		GoogleFolderName: "Daily Social Posts",
		TZSchedule:       "Asia/Singapore",
		DocMode:          "append",
		FeedsPath:        "feeds.yaml",
	}
}

// Load reads settings from the environment. A .env file in the working
// directory is loaded first when present; a missing .env is not an error.
func Load() Settings {
	// godotenv never overrides variables already set in the environment.
	_ = godotenv.Load()

	s := Defaults()
	s.DeepSeekAPIKey = getEnv("DEEPSEEK_API_KEY", s.DeepSeekAPIKey)
	s.SMTPSender = getEnv("SMTP_SENDER", s.SMTPSender)
	s.SMTPAppPassword = getEnv("SMTP_APP_PASSWORD", s.SMTPAppPassword)
	s.SMTPTo = getEnv("SMTP_TO", s.SMTPTo)
	s.GoogleFolderName = getEnv("GOOGLE_FOLDER_NAME", s.GoogleFolderName)
	s.GoogleFolderID = getEnv("GOOGLE_FOLDER_ID", s.GoogleFolderID)
	s.TZSchedule = getEnv("TZ_SCHEDULE", s.TZSchedule)
	s.DocMode = getEnv("GDOC_MODE", s.DocMode)
	s.FeedsPath = getEnv("FEEDS_PATH", s.FeedsPath)
	return s
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
