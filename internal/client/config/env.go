package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "HUSTLE_"

// parseEnv overlays values from the dotenv file and the process environment.
// A missing dotenv file is not an error.
func parseEnv(cfg *Config, dotenvPath string) error {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", dotenvPath, err)
		}
	}

	lookup := func(name string) string {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v
		}
		return fileVars[envPrefix+name]
	}

	setString(&cfg.APIBaseURL, lookup("API_BASE_URL"))
	setString(&cfg.StorePath, lookup("STORE_PATH"))
	setString(&cfg.ExportDir, lookup("EXPORT_DIR"))
	setString(&cfg.LogLevel, lookup("LOG_LEVEL"))
	setString(&cfg.LogBackend, lookup("LOG_BACKEND"))

	if v := lookup("NOTIFICATION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sNOTIFICATION_TTL: %w", envPrefix, err)
		}
		cfg.NotificationTTL = d
	}
	return nil
}
