package decideverdict

import (
	"fmt"
	"time"

	"loan-saarthi/internal/common/config"
	"loan-saarthi/internal/underwriting"
)

type Config struct {
	Enabled       bool                `mapstructure:"enabled"`
	MaxJobsActive int                 `mapstructure:"max_jobs_active"`
	Timeout       time.Duration       `mapstructure:"timeout"`
	Policy        underwriting.Policy `mapstructure:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       10 * time.Second,
		Policy:        underwriting.DefaultPolicy(),
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.Policy.AnnualRatePercent < 0 {
		return fmt.Errorf("policy rate must not be negative")
	}
	if c.Policy.MaxLimitMultiple <= 0 || c.Policy.MaxEMIShare <= 0 {
		return fmt.Errorf("policy limit multiple and emi share must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		workerCfg := config.GetWorkerConfig(appConfig, TaskType)
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}
	}
	return cfg
}
