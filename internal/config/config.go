package config

import (
	"fmt"
	"time"
)

type Config struct {
	Site          SiteConfig          `yaml:"site"`
	Browser       BrowserConfig       `yaml:"browser"`
	Settle        SettleConfig        `yaml:"settle"`
	Output        OutputConfig        `yaml:"output"`
	SelectorsFile string              `yaml:"selectors_file"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

type BrowserConfig struct {
	// ChromePath may be empty; the driver then resolves its own binary.
	ChromePath    string `yaml:"chrome_path"`
	Headless      bool   `yaml:"headless"`
	LoginTimeoutS int    `yaml:"login_timeout_s"`
	StepTimeoutS  int    `yaml:"step_timeout_s"`
	ReadyTimeoutS int    `yaml:"ready_timeout_s"`
	TableTimeoutS int    `yaml:"table_timeout_s"`
}

type SettleConfig struct {
	PollIntervalMS int `yaml:"poll_interval_ms"`
	StablePolls    int `yaml:"stable_polls"`
	MaxWaitS       int `yaml:"max_wait_s"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if c.Browser.LoginTimeoutS <= 0 {
		return fmt.Errorf("browser.login_timeout_s must be > 0")
	}
	if c.Browser.StepTimeoutS <= 0 {
		return fmt.Errorf("browser.step_timeout_s must be > 0")
	}
	if c.Browser.ReadyTimeoutS <= 0 {
		return fmt.Errorf("browser.ready_timeout_s must be > 0")
	}
	if c.Browser.TableTimeoutS <= 0 {
		return fmt.Errorf("browser.table_timeout_s must be > 0")
	}
	if c.Settle.PollIntervalMS <= 0 {
		return fmt.Errorf("settle.poll_interval_ms must be > 0")
	}
	if c.Settle.StablePolls <= 0 {
		return fmt.Errorf("settle.stable_polls must be > 0")
	}
	if c.Settle.MaxWaitS <= 0 {
		return fmt.Errorf("settle.max_wait_s must be > 0")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.SelectorsFile == "" {
		return fmt.Errorf("selectors_file is required")
	}
	if c.Observability.LogPath == "" {
		return fmt.Errorf("observability.log_path is required")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetLoginTimeout() time.Duration {
	return time.Duration(c.Browser.LoginTimeoutS) * time.Second
}

func (c *Config) GetStepTimeout() time.Duration {
	return time.Duration(c.Browser.StepTimeoutS) * time.Second
}

func (c *Config) GetReadyTimeout() time.Duration {
	return time.Duration(c.Browser.ReadyTimeoutS) * time.Second
}

func (c *Config) GetTableTimeout() time.Duration {
	return time.Duration(c.Browser.TableTimeoutS) * time.Second
}

func (c *Config) GetSettlePollInterval() time.Duration {
	return time.Duration(c.Settle.PollIntervalMS) * time.Millisecond
}

func (c *Config) GetSettleWindow() time.Duration {
	return time.Duration(c.Settle.MaxWaitS) * time.Second
}
