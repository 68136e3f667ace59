package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
// All log output goes to stderr; stdout belongs to the MCP stdio transport.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// GetRequiredEnv fetches a required environment variable or exits if not set.
func GetRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Msgf("%s environment variable is required", key)
	}
	return value
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// AzureCredentials holds the service-principal identity used for Graph
// access.
type AzureCredentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// LoadAzureCredentials reads the required Azure AD settings, exiting when any
// is missing.
func LoadAzureCredentials() AzureCredentials {
	return AzureCredentials{
		TenantID:     GetRequiredEnv("AZURE_TENANT_ID"),
		ClientID:     GetRequiredEnv("AZURE_CLIENT_ID"),
		ClientSecret: GetRequiredEnv("AZURE_CLIENT_SECRET"),
	}
}

// TrackerConfig points at the trade tracker workbook the logTrades tool
// writes to. Both values may be empty; the tool reports a caller error when
// used unconfigured.
type TrackerConfig struct {
	URL      string
	FileName string
}

func (c TrackerConfig) Configured() bool {
	return c.URL != "" && c.FileName != ""
}

// LoadTrackerConfig reads the trade tracker destination from the environment.
func LoadTrackerConfig() TrackerConfig {
	cfg := TrackerConfig{
		URL:      os.Getenv("TRADE_TRACKER_URL"),
		FileName: os.Getenv("TRADE_TRACKER_FILE"),
	}

	if cfg.Configured() {
		log.Debug().
			Str("url", cfg.URL).
			Str("file", cfg.FileName).
			Msg("Trade tracker configured")
	} else {
		log.Warn().Msg("TRADE_TRACKER_URL/TRADE_TRACKER_FILE not set; logTrades tool will reject calls")
	}
	return cfg
}
