package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/csiess85/deckenhoehe/internal/wx"
)

type AppConfig struct {
	// Airports is the ICAO station set to track.
	Airports []string

	// FetchInterval controls how often reports are fetched for the
	// whole station set.
	FetchInterval time.Duration

	// Scheme is the flight-category classification scheme.
	Scheme wx.Scheme

	// HTTPTimeout bounds outbound requests to the data API.
	HTTPTimeout time.Duration

	// HistoryStep is the tick interval for TAF series reconstruction.
	HistoryStep time.Duration

	DBPath string
	Port   string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	airports, err := loadAirports()
	if err != nil {
		return nil, err
	}
	cfg.Airports = airports

	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	scheme, err := wx.SchemeByName(os.Getenv("CLASSIFY_SCHEME"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLASSIFY_SCHEME: %w", err)
	}
	cfg.Scheme = scheme

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	stepStr := getenvDefault("HISTORY_STEP", "1h")
	step, err := time.ParseDuration(stepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_STEP: %w", err)
	}
	cfg.HistoryStep = step

	cfg.DBPath = getenvDefault("DB_PATH", "./deckenhoehe.db")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func loadAirports() ([]string, error) {
	raw := os.Getenv("AIRPORTS")
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("AIRPORTS must list at least one ICAO code")
	}

	var airports []string
	for _, code := range strings.Split(raw, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		airports = append(airports, code)
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("AIRPORTS must list at least one ICAO code")
	}

	return airports, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
