package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the process-wide defaults read from the environment
type Settings struct {
	// RatesPath points at a rate-table YAML; empty uses the embedded tables
	RatesPath string
	// ReferenceDate is used when a request does not set its own
	ReferenceDate string
	// Format is the default output format
	Format string
	// Debug enables engine logging
	Debug bool
	// Env selects the log handler: "prod" logs JSON, anything else text
	Env string
}

// DefaultEnvFile is read when no env file is named; it may be absent
const DefaultEnvFile = ".env"

// LoadSettings reads an env file and then the QUOTECALC_* variables.
// Variables already present in the environment win over the file. An empty
// envFile reads DefaultEnvFile and tolerates its absence; a named file must
// load.
func LoadSettings(envFile string) (Settings, error) {
	optional := envFile == ""
	if optional {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if !optional || !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	return Settings{
		RatesPath:     getEnv("QUOTECALC_RATES", ""),
		ReferenceDate: getEnv("QUOTECALC_REFERENCE_DATE", ""),
		Format:        getEnv("QUOTECALC_FORMAT", "console"),
		Debug:         getEnvAsBool("QUOTECALC_DEBUG", false),
		Env:           getEnv("QUOTECALC_ENV", "dev"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
