package config

import (
	"fmt"
	"net/url"
)

// DSN returns the driver-specific connection string for the configured store.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	switch c.Type {
	case "postgres":
		return buildPostgresURL(c)
	default:
		return c.DatabasePath
	}
}

// buildPostgresURL builds a PostgreSQL connection URL from config
func buildPostgresURL(cfg DatabaseConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}
	if cfg.Username != "" {
		if cfg.Password != "" {
			u.User = url.UserPassword(cfg.Username, cfg.Password)
		} else {
			u.User = url.User(cfg.Username)
		}
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{cfg.SSLMode}}.Encode()
	}
	return u.String()
}
