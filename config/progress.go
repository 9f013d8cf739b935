package config

import (
	"log"
	"os"
	"time"

	"main/utils"
)

type ProgressConfig struct {
	DataDir        string
	MediaDir       string
	WebhookURL     string
	GiphyAPIKey    string
	RedisURL       string
	StatusCacheTTL time.Duration
	SweepInterval  time.Duration
	Timezone       string
	WeekStart      time.Weekday
}

func LoadProgressConfig() ProgressConfig {
	return ProgressConfig{
		DataDir:        utils.GetEnvAsString("DATA_DIR", defaultDataDir()),
		MediaDir:       utils.GetEnvAsString("MEDIA_DIR", os.TempDir()),
		WebhookURL:     utils.GetEnvAsString("WEBHOOK_URL", ""),
		GiphyAPIKey:    utils.GetEnvAsString("GIPHY_API_KEY", ""),
		RedisURL:       utils.GetEnvAsString("REDIS_URL", ""),
		StatusCacheTTL: utils.GetEnvAsDuration("STATUS_CACHE_TTL", 15*time.Minute),
		SweepInterval:  utils.GetEnvAsDuration("SWEEP_INTERVAL", time.Hour),
		Timezone:       utils.GetEnvAsString("TIMEZONE", "Local"),
		WeekStart:      weekStartFromEnv(),
	}
}

func defaultDataDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func weekStartFromEnv() time.Weekday {
	switch utils.GetEnvAsString("WEEK_START", "Monday") {
	case "Sunday":
		return time.Sunday
	case "Monday":
		return time.Monday
	case "Saturday":
		return time.Saturday
	default:
		log.Printf("WARN: unsupported WEEK_START value, falling back to Monday")
		return time.Monday
	}
}

// Location resolves the configured timezone, falling back to the system local one
func (c ProgressConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("WARN: unknown TIMEZONE %q, falling back to local: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}
