package config

import "os"

// parseEnv overlays Config fields from environment variables. Only variables
// that are actually set override the current values.
//
//	ADDRESS       HTTP bind address
//	DATABASE_DSN  PostgreSQL DSN
//	JWT_SECRET    HMAC secret for session tokens
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
}
