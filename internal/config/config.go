// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"strings"
)

// Environment tags a deployment mode. Validation rules differ between
// development and production.
type Environment string

// Known environments.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// defaultSecretKey is the development placeholder. Production validation
// rejects it.
const defaultSecretKey = "dev-secret-key-change-in-production"

// ParseEnvironment normalizes a raw environment string. Unknown values fall
// back to Development, mirroring the service's permissive default mode.
func ParseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Production:
		return Production
	default:
		return Development
	}
}

// Config contains process configuration. Read-only after Load.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":4000".
	Addr string `koanf:"addr"`

	// Environment selects the validation mode: development or production.
	Environment string `koanf:"environment"`

	// SecretKey is the application secret. Production deployments must
	// replace the development default.
	SecretKey string `koanf:"secret_key"`

	// Token is the Databricks access token sent as a Bearer credential to
	// the model serving endpoint. Never logged in clear text.
	Token string `koanf:"token"`

	// EndpointURL is the MLflow model serving endpoint. Must be HTTPS.
	EndpointURL string `koanf:"endpoint_url"`

	// TimeoutSeconds bounds each outbound scoring call.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// AppName and AppVersion are reported by the health endpoint.
	AppName    string `koanf:"app_name"`
	AppVersion string `koanf:"app_version"`

	// Features lists the model's expected feature names in the exact
	// column order the serialized payload must use.
	Features []string `koanf:"features"`
}

// New creates a Config with defaults. The feature list matches the
// diabetes-progression model's training columns, in training order.
func New() *Config {
	c := &Config{
		LogLevel:       "info",
		Addr:           ":4000",
		Environment:    string(Development),
		SecretKey:      defaultSecretKey,
		TimeoutSeconds: 30,
		AppName:        "Diabetes Progression Predictor",
		AppVersion:     "1.0.0",
		Features: []string{
			"age", "sex", "bmi", "bp",
			"s1", "s2", "s3", "s4", "s5", "s6",
		},
	}
	return c
}

// Validate checks that the configuration is complete enough to serve
// predictions. It returns every problem found, not just the first, so
// operators can fix them in one pass. An empty slice means valid.
func (c *Config) Validate(env Environment) []string {
	var errs []string

	if c.Token == "" {
		errs = append(errs, "token is not set; set PROGNO_TOKEN to your Databricks access token")
	}
	if c.EndpointURL == "" {
		errs = append(errs, "endpoint_url is not set; set PROGNO_ENDPOINT_URL to your MLflow serving endpoint")
	}
	if c.EndpointURL != "" && !strings.HasPrefix(c.EndpointURL, "https://") {
		errs = append(errs, fmt.Sprintf("endpoint_url should use HTTPS for security; current value: %s", c.EndpointURL))
	}
	if env == Production && c.SecretKey == defaultSecretKey {
		errs = append(errs, "secret_key is using the default development value; set a secure random value in production")
	}
	if len(c.Features) == 0 {
		errs = append(errs, "features list is empty; the model's expected feature names must be configured")
	}

	return errs
}
