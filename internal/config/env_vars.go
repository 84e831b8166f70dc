package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar  = "PORT"
	appNameVar  = "APP_NAME"
	databaseVar = "DATABASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "5000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "MFA Server")
}

// GetDatabaseURL returns the Postgres DSN. Empty means run on the in-memory
// stores, which is the development default.
func (EnvVars) GetDatabaseURL() string {
	return GetEnv(databaseVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
