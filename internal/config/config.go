// Package config defines process configuration and its loading order.
//
// Precedence (low -> high): built-in defaults, optional YAML file named by
// TOP6_CONFIG, environment variables with the TOP6_ prefix.
package config

import "time"

// Config contains process configuration read once at startup and passed
// explicitly into the collaborators that need it.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8081".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database path.
	DBPath string `koanf:"db_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OpenAIKey authenticates the classification call. Empty disables the
	// external classifier; every ballot then passes the soft gate.
	OpenAIKey string `koanf:"openai_key"`

	// OpenAIBaseURL points at the chat-completions API.
	OpenAIBaseURL string `koanf:"openai_base_url"`

	// Model names the chat model used for ballot classification.
	Model string `koanf:"model"`

	// Temperature for the classification call.
	Temperature float64 `koanf:"temperature"`

	// ClassifyTimeout bounds the classification HTTP client. Zero means no
	// client-level timeout; the router's request timeout still applies.
	ClassifyTimeout time.Duration `koanf:"classify_timeout"`

	// EnableAutofix exposes the "fix it" action that force-ranks Liverpool
	// first on a blocked ballot.
	EnableAutofix bool `koanf:"enable_autofix"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:          ":8081",
		DBPath:        "top6.db",
		LogLevel:      "info",
		OpenAIBaseURL: "https://api.openai.com/v1",
		Model:         "gpt-3.5-turbo",
		Temperature:   0.3,
		EnableAutofix: true,
	}
}
