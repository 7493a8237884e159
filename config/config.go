package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	ExtractorBaseURL string
	StorePath        string
	FrontendURL      string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; in deployment the env vars come from the
	// platform and the missing file is ignored.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8081"),
		// Trailing slash stripped to avoid double slashes in request URLs
		ExtractorBaseURL: strings.TrimRight(getEnv("EXTRACTOR_BASE_URL", "http://localhost:8080/api/v1"), "/"),
		StorePath:        getEnv("STORE_PATH", "data/talentlens_candidates.json"),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
	}

	if os.Getenv("EXTRACTOR_BASE_URL") == "" {
		log.Println("WARNING: EXTRACTOR_BASE_URL not set, using local development default.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
