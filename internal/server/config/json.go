package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tzetzo/task-manager-api/internal/flagx"
	"github.com/tzetzo/task-manager-api/internal/timex"
)

// JSONConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "10s" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JSONConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config
// command-line flags; if neither is set, no JSON file is loaded. If the file
// cannot be read or contains invalid JSON, the function panics.
func parseJSON(config *Config) {

	jsonConfigFile := flagx.JSONConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JSONConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	}
}
