package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// LoadEnv loads the .env file for the given environment.
// Lookup order: .env.<env>.local, .env.<env>, .env.local, .env
func LoadEnv(env string) error {
	candidates := []string{".env"}
	if env != "" {
		candidates = []string{
			fmt.Sprintf(".env.%s.local", env),
			fmt.Sprintf(".env.%s", env),
			".env.local",
			".env",
		}
	}
	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return godotenv.Load(name)
		}
	}
	return fmt.Errorf("no .env file found for env %q", env)
}

// GetEnv returns the trimmed value of an environment variable.
func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// GetIntEnv returns an environment variable parsed as int64, 0 when unset or invalid.
func GetIntEnv(key string) int64 {
	return cast.ToInt64(GetEnv(key))
}

// GetBoolEnv returns an environment variable parsed as bool, false when unset or invalid.
func GetBoolEnv(key string) bool {
	return cast.ToBool(GetEnv(key))
}

// GetDurationEnv returns an environment variable parsed as time.Duration string, e.g. "5m".
func GetDurationEnv(key string) int64 {
	d, err := cast.ToDurationE(GetEnv(key))
	if err != nil {
		return 0
	}
	return int64(d)
}
