package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App is the process configuration, loaded from the environment.
type App struct {
	Addr      string `envconfig:"GYMDESK_ADDR" default:":8080"`
	Env       string `envconfig:"GYMDESK_ENV" default:"development"`
	DBPath    string `envconfig:"GYMDESK_DB_PATH" default:"gymdesk.db"`
	StaticDir string `envconfig:"GYMDESK_STATIC_DIR" default:"static"`
	// CSRFKey is a 64-hex-char (32 byte) secret; empty generates a random
	// per-startup key outside production.
	CSRFKey      string `envconfig:"GYMDESK_CSRF_KEY"`
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	EmailFrom    string `envconfig:"GYMDESK_EMAIL_FROM" default:"GymDesk <noreply@gymdesk.example>"`
}

// Load reads configuration from the environment.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// IsProduction reports whether the process runs in production mode.
func (c App) IsProduction() bool {
	return c.Env == "production"
}
