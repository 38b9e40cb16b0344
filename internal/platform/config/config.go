package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the deployment-provided configuration for the API process.
type Config struct {
	Port string

	// StorageBackend selects the repo adapters: "memory" or "postgres".
	StorageBackend string
	DatabaseURL    string

	JWTSecret      string
	TokenTTL       time.Duration
	TokenClockSkew time.Duration

	// CORSOrigins are the front-end origins allowed to call the API.
	CORSOrigins []string

	// Supabase object storage for player images; when URL is empty the
	// in-memory image store is used instead.
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
}

// LoadFromEnv reads configuration from environment variables.
// JWT_SECRET is required; everything else has a workable default.
func LoadFromEnv() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		StorageBackend: getenv("STORAGE_BACKEND", "memory"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      secret,
		TokenTTL:       7 * 24 * time.Hour,
		TokenClockSkew: 30 * time.Second,
		CORSOrigins:    splitOrigins(getenv("CORS_ORIGINS", "http://localhost:3000")),
		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseBucket: getenv("SUPABASE_BUCKET", "player-images"),
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TOKEN_TTL must be a duration (e.g. 168h): %w", err)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("TOKEN_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TOKEN_CLOCK_SKEW must be a duration (e.g. 30s): %w", err)
		}
		cfg.TokenClockSkew = d
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
