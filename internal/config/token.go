package config

import (
	"fmt"
	"time"
)

// TokenConfig points at the external token custody service that moves
// value on the engine's behalf.
type TokenConfig struct {
	// Endpoint is the base URL of the token custody service.
	Endpoint string `mapstructure:"endpoint"`
	// CustodyAddress is the account holding staked principal and the
	// reward budget. Deposits are pulled into it, claims are paid out
	// of it.
	CustodyAddress string        `mapstructure:"custody-address"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetryTimes  uint          `mapstructure:"max-retry-times"`
	RetryInterval  time.Duration `mapstructure:"retry-interval"`
}

func (cfg *TokenConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("token custody endpoint is required")
	}
	if cfg.CustodyAddress == "" {
		return fmt.Errorf("token custody address is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("token client timeout must be positive")
	}
	return nil
}
