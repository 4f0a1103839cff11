package postgres

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/projects-console/config"
)

// DSN returns cfg.DSN when set, otherwise a keyword/value DSN built from the
// individual settings. Both drivers accept this format.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(cfg.Host), cfg.Port, quote(cfg.User), quote(cfg.Password), quote(cfg.Name), quote(cfg.SSLMode),
	)
}

// quote wraps a value in single quotes so empty values and spaces survive.
func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
