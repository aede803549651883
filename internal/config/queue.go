package config

import "fmt"

type QueueConfig struct {
	QueueUser     string `mapstructure:"queue-user"`
	QueuePassword string `mapstructure:"queue-password"`
	Url           string `mapstructure:"url"`
	Exchange      string `mapstructure:"exchange"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}
	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}
	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}
	if cfg.Exchange == "" {
		return fmt.Errorf("missing queue exchange")
	}
	return nil
}
