package cmd

import (
	"errors"
	"fmt"
	"strings"
)

// Event relay modes.
const (
	EventRelayLocal    = "local"
	EventRelayPostgres = "postgres"
)

type Config struct {
	HTTPPort     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	SettingsFile string
	EventRelay   string
	RelayChannel string
}

// DSN renders the libpq connection string, usable by both the gorm driver and
// the lib/pq listener.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, quoteDSNValue(c.DBPassword), c.DBName, c.DBSslMode)
}

func (c Config) Validate() error {
	switch c.EventRelay {
	case "", EventRelayLocal, EventRelayPostgres:
	default:
		return fmt.Errorf("unknown EVENT_RELAY %q, want %s or %s", c.EventRelay, EventRelayLocal, EventRelayPostgres)
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	return nil
}

// quoteDSNValue quotes a key/value connection string value when it holds
// spaces or quotes.
func quoteDSNValue(v string) string {
	if v == "" || !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
