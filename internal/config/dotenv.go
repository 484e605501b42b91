package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files in priority order: .env.local then .env.
// godotenv.Load never overwrites variables that are already set, so OS
// env vars win over both files and .env.local wins over .env.
// Returns the list of files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
