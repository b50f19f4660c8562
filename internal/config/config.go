// Package config reads the process configuration from environment
// variables with workable local-development defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	portEnvVar       = "PORT"
	apiPortEnvVar    = "API_PORT"
	appNameVar       = "APP_NAME"
	apiBaseURLVar    = "API_BASE_URL"
	signingKeyVar    = "SIGNING_KEY"
	tokenExpHoursVar = "TOKEN_EXPIRATION_HOURS"
	dbPathVar        = "DB_PATH"
	issuerVar        = "TOKEN_ISSUER"
	audienceVar      = "TOKEN_AUDIENCE"
	standaloneVar    = "STANDALONE"
	debugVar         = "DEBUG"
	viewsDirVar      = "VIEWS_DIR"
)

// AppConfig is the full configuration surface of the process
type AppConfig interface {
	GetPort() string
	GetAPIPort() string
	GetAppName() string
	GetAPIBaseURL() string
	GetSigningKey() string
	GetTokenExpiration() int
	GetDBPath() string
	GetIssuer() string
	GetAudience() []string
	IsStandalone() bool
	IsDebug() bool
	GetViewsDir() string
}

type EnvVars struct{}

var _ AppConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAPIPort() string {
	port := GetEnv(apiPortEnvVar, "3005")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "PetTrack Console")
}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:3005")
}

func (EnvVars) GetSigningKey() string {
	return GetEnv(signingKeyVar, "dev-signing-key-do-not-use-in-production")
}

func (EnvVars) GetTokenExpiration() int {
	raw := GetEnv(tokenExpHoursVar, "24")
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 24
	}
	return hours
}

func (EnvVars) GetDBPath() string {
	return GetEnv(dbPathVar, "./pettrack.db")
}

func (EnvVars) GetIssuer() string {
	return GetEnv(issuerVar, "pettrack")
}

func (EnvVars) GetAudience() []string {
	raw := GetEnv(audienceVar, "pettrack-console")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsStandalone reports whether the process should run the embedded
// platform API alongside the console.
func (EnvVars) IsStandalone() bool {
	return GetEnv(standaloneVar, "true") == "true"
}

func (EnvVars) IsDebug() bool {
	return GetEnv(debugVar, "false") == "true"
}

func (EnvVars) GetViewsDir() string {
	return GetEnv(viewsDirVar, "./console/views")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
