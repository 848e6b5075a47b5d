package config

import (
	"os"
	"strconv"
	"strings"
)

// PlaceholderSheetID is the value shipped in .env.example; a config
// carrying it is treated the same as no spreadsheet at all.
const PlaceholderSheetID = "demo-sheet-id"

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	SpreadsheetID        string
	ServiceAccountEmail  string
	ServiceAccountKey    string
	GroqAPIKey           string
	AuthSecret           string
	AuthIssuer           string
	WeeklyReportCron     string
	MetricsDiskPath      string
	MetricsSampleSeconds int
	CorsOrigins          []string
}

func Load() Config {
	return Config{
		SpreadsheetID:        envOr("GOOGLE_SHEET_ID", ""),
		ServiceAccountEmail:  envOr("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		ServiceAccountKey:    unescapeKey(os.Getenv("GOOGLE_PRIVATE_KEY")),
		GroqAPIKey:           envOr("GROQ_API_KEY", ""),
		AuthSecret:           envOr("AUTH_SECRET", ""),
		AuthIssuer:           envOr("AUTH_ISSUER", "goaltracker"),
		WeeklyReportCron:     envOr("WEEKLY_REPORT_CRON", "0 18 * * 6"),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 5),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

// SheetsConfigured reports whether the remote backend should even be
// attempted. A missing id, missing credentials, or the placeholder id
// all mean the in-memory fallback runs for the life of the process.
func (c Config) SheetsConfigured() bool {
	return c.SpreadsheetID != "" &&
		c.SpreadsheetID != PlaceholderSheetID &&
		c.ServiceAccountEmail != "" &&
		c.ServiceAccountKey != ""
}

// unescapeKey turns the literal \n sequences that survive .env files
// back into newlines so the PEM block parses.
func unescapeKey(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `\n`, "\n")
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
