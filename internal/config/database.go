package config

import (
	"fmt"
	"net/url"
	"strings"
)

// LoadDatabase reads only the settings needed to reach Postgres, for tools
// such as the migration runner that do not start the API.
func LoadDatabase() (Config, error) {
	cfg := Config{
		StorageDriver: StoragePostgres,
		DBURL:         strings.TrimSpace(getEnv("DB_URL", "")),
	}
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	var err error
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DatabaseDSN returns DB_URL with driver options applied. An explicit
// disable_prepared_binary_result in the URL always wins.
func (c Config) DatabaseDSN() string {
	if !c.DBDisablePreparedBinary {
		return c.DBURL
	}

	parsed, err := url.Parse(c.DBURL)
	if err != nil || parsed.Scheme == "" {
		return c.DBURL
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// DatabaseName extracts the database name from a URL or key=value DSN.
func DatabaseName(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(strings.TrimSpace(name), `"'`)
		}
	}
	return ""
}
