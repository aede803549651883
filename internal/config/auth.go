package config

import (
	"fmt"
	"time"
)

// AuthConfig points at the external authorization provider gating
// privileged operations (pool creation).
type AuthConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *AuthConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("authorization provider endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("authorization provider timeout must be positive")
	}
	return nil
}
