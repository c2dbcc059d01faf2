package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultInitiateURL = "https://www.paynow.co.zw/interface/initiatetransaction"

type Config struct {
	IntegrationID  string
	IntegrationKey string
	RelaySecret    string
	Port           int
	InitiateURL    string
	ResultURL      string
	ReturnURL      string
	PaynowTimeout  time.Duration
}

// Presence reports which required variables were set, for the startup
// env-check log line. Only booleans, never values.
type Presence struct {
	IntegrationID  bool
	IntegrationKey bool
	RelaySecret    bool
}

// Load reads the relay configuration from the environment. The error names
// every missing required variable; the caller treats it as fatal before
// binding a socket.
func Load() (*Config, Presence, error) {
	cfg := &Config{
		IntegrationID:  os.Getenv("PAYNOW_INTEGRATION_ID"),
		IntegrationKey: os.Getenv("PAYNOW_INTEGRATION_KEY"),
		RelaySecret:    os.Getenv("RELAY_SECRET"),
		InitiateURL:    getEnv("PAYNOW_API_URL", defaultInitiateURL),
		ResultURL:      os.Getenv("PAYNOW_RESULT_URL"),
		ReturnURL:      os.Getenv("PAYNOW_RETURN_URL"),
	}

	presence := Presence{
		IntegrationID:  cfg.IntegrationID != "",
		IntegrationKey: cfg.IntegrationKey != "",
		RelaySecret:    cfg.RelaySecret != "",
	}

	var missing []string
	if !presence.IntegrationID {
		missing = append(missing, "PAYNOW_INTEGRATION_ID")
	}
	if !presence.IntegrationKey {
		missing = append(missing, "PAYNOW_INTEGRATION_KEY")
	}
	if !presence.RelaySecret {
		missing = append(missing, "RELAY_SECRET")
	}
	if len(missing) > 0 {
		return nil, presence, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, presence, fmt.Errorf("invalid PORT: %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	timeout, err := time.ParseDuration(getEnv("PAYNOW_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		return nil, presence, fmt.Errorf("invalid PAYNOW_TIMEOUT: %q", os.Getenv("PAYNOW_TIMEOUT"))
	}
	cfg.PaynowTimeout = timeout

	return cfg, presence, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
