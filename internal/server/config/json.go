package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/medidesk/internal/flagx"
	"github.com/dmitrijs2005/medidesk/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC  *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN       *string         `json:"database_dsn"`
	DirectDatabaseDSN *string         `json:"direct_database_dsn"`
	SecretKey         *string         `json:"secret_key"`
	Environment       *string         `json:"environment"`
	RunMigrations     *bool           `json:"run_migrations"`
	LogLevel          *string         `json:"log_level"`
	StoreTimeout      *timex.Duration `json:"store_timeout"`
}

// parseJson overlays values from the file named by -c / -config. Without
// that flag nothing is loaded. An unreadable or invalid file panics: the
// operator asked for it explicitly.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DirectDatabaseDSN, c.DirectDatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	if c.RunMigrations != nil {
		config.RunMigrations = *c.RunMigrations
	}
	if c.StoreTimeout != nil {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
