package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Secrets never live in the TOML file. They come from the process
// environment, falling back to an optional dotenv file.
type Secrets struct {
	PostgresPassword string
	SentryDSN        string
	HoneycombAPIKey  string
	HoneycombEnabled bool
}

// LoadSecrets reads the dotenv file at path, if there is one, and lets
// non-empty process environment variables override it. The process environment is not modified.
func LoadSecrets(path string) (Secrets, error) {
	fileVars := map[string]string{}
	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Secrets{}, fmt.Errorf("read env file %s: %w", path, err)
		}
	}

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVars[key]
	}

	return Secrets{
		PostgresPassword: lookup("POSTGRES_PASSWORD"),
		SentryDSN:        lookup("SENTRY_DSN"),
		HoneycombAPIKey:  lookup("HONEYCOMB_API_KEY"),
		HoneycombEnabled: lookup("HONEYCOMB_ENABLED") == "true",
	}, nil
}
