// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: variables from a .env file (joho/godotenv), then the
//     process environment, which wins over the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL, e.g. https://api.dailyhustle.app/api
//	-s string   path of the local sqlite store
//	-e string   directory CSV exports are saved to
//	-l string   log level (debug, info, warn, error)
//	-p int      default page size (10, 25 or 50)
//
// Environment variables
//
//	HUSTLE_API_BASE_URL, HUSTLE_STORE_PATH, HUSTLE_EXPORT_DIR,
//	HUSTLE_LOG_LEVEL, HUSTLE_LOG_BACKEND, HUSTLE_NOTIFICATION_TTL
//
// # JSON schema
//
// Durations are strings like "4s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.dailyhustle.app/api",
//	  "store_path": "hustleadmin.db",
//	  "export_dir": "exports",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "notification_ttl": "4s",
//	  "default_page_size": 25
//	}
package config
