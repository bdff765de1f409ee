package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	RedisURL       string
	SessionSecret  string
	MapAPIKey      string // map-provider key, passed through to clients
	BrevoAPIKey    string // transactional email; empty disables sending
	MailFrom       string
	AllowedOrigin  string // CORS origin suffix, e.g. .karoo.properties
	ResetBaseURL   string // base URL for password-reset links
	DigestSchedule bool   // enable the saved-search digest scheduler
}

// ErrMissingConfig is returned when a required value is absent at startup.
// Missing configuration is the only process-fatal error in this system.
var ErrMissingConfig = errors.New("missing required configuration")

// Load loads config from env and optional .env file. DATABASE_URL and
// SESSION_SECRET are required; everything else has a default or degrades to a
// no-op.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}
	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	cfg := &Config{
		Env:            env,
		Port:           port,
		DatabaseURL:    dbURL,
		RedisURL:       viper.GetString("REDIS_URL"),
		SessionSecret:  viper.GetString("SESSION_SECRET"),
		MapAPIKey:      viper.GetString("MAP_API_KEY"),
		BrevoAPIKey:    viper.GetString("BREVO_API_KEY"),
		MailFrom:       viper.GetString("MAIL_FROM"),
		AllowedOrigin:  viper.GetString("FRONTEND_URL_ENDS_WITH"),
		ResetBaseURL:   resetBaseURL(viper.GetString("RESET_BASE_URL")),
		DigestSchedule: strings.EqualFold(viper.GetString("ENABLE_DIGEST_SCHEDULER"), "true"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.Join(ErrMissingConfig, errors.New("DATABASE_URL is not set"))
	}
	if cfg.SessionSecret == "" {
		return nil, errors.Join(ErrMissingConfig, errors.New("SESSION_SECRET is not set"))
	}
	return cfg, nil
}

func resetBaseURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "https://karoo.properties"
	}
	return s
}
