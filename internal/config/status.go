package config

import (
	"context"
	"strings"

	"github.com/okian/progno/pkg/logger"
)

// Status logs the effective configuration at startup. The token is masked;
// only its presence is reported.
func (c *Config) Status(ctx context.Context, log logger.Logger) {
	tokenSet := "no (NOT SET)"
	if c.Token != "" {
		tokenSet = "yes (hidden)"
	}
	log.Info(ctx, "configuration loaded",
		logger.String("app", c.AppName),
		logger.String("version", c.AppVersion),
		logger.String("environment", string(ParseEnvironment(c.Environment))),
		logger.String("addr", c.Addr),
		logger.String("endpoint_url", c.EndpointURL),
		logger.String("token_set", tokenSet),
		logger.Int("timeout_seconds", c.TimeoutSeconds),
		logger.String("features", strings.Join(c.Features, ", ")),
	)
}
