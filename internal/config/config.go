package config

import (
	"fmt"
	"time"
)

type Config struct {
	Browser       BrowserConfig       `yaml:"browser"`
	Directory     DirectoryConfig     `yaml:"directory"`
	Pacing        PacingConfig        `yaml:"pacing"`
	Retry         RetryConfig         `yaml:"retry"`
	Pagination    PaginationConfig    `yaml:"pagination"`
	Output        OutputConfig        `yaml:"output"`
	SelectorsFile string              `yaml:"selectors_file"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type BrowserConfig struct {
	ChromePath   string `yaml:"chrome_path"`
	Headless     bool   `yaml:"headless"`
	PageTimeoutS int    `yaml:"page_timeout_s"`
	WaitLoadS    int    `yaml:"wait_load_timeout_s"`
	DOMStableMS  int    `yaml:"dom_stable_ms"`
	ConsentWaitS int    `yaml:"consent_wait_s"`
	UserAgent    string `yaml:"user_agent"`
}

// DirectoryConfig décrit l'annuaire cible et les cantons à parcourir.
type DirectoryConfig struct {
	BaseURL    string   `yaml:"base_url"`
	SearchTerm string   `yaml:"search_term"`
	Cantons    []string `yaml:"cantons"`
}

type PacingConfig struct {
	MaxConcurrentPerHost int `yaml:"max_concurrent_per_host"`
	RPM                  int `yaml:"rpm"`
	PageIntervalMS       int `yaml:"page_interval_ms"`
}

type RetryConfig struct {
	MaxRetries   int `yaml:"max_retries"`
	BackoffMinMS int `yaml:"backoff_min_ms"`
	BackoffMaxMS int `yaml:"backoff_max_ms"`
	JitterPct    int `yaml:"jitter_pct"`
}

type PaginationConfig struct {
	MaxPages int `yaml:"max_pages"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type StorageConfig struct {
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.Directory.BaseURL == "" {
		return fmt.Errorf("directory.base_url is required")
	}
	if c.Directory.SearchTerm == "" {
		return fmt.Errorf("directory.search_term is required")
	}
	if len(c.Directory.Cantons) == 0 {
		return fmt.Errorf("directory.cantons must not be empty")
	}
	if c.Browser.PageTimeoutS <= 0 {
		return fmt.Errorf("browser.page_timeout_s must be > 0")
	}
	if c.Browser.WaitLoadS <= 0 {
		return fmt.Errorf("browser.wait_load_timeout_s must be > 0")
	}
	if c.Browser.DOMStableMS < 0 {
		return fmt.Errorf("browser.dom_stable_ms must be >= 0")
	}
	if c.Browser.ConsentWaitS <= 0 {
		return fmt.Errorf("browser.consent_wait_s must be > 0")
	}
	if c.Pacing.MaxConcurrentPerHost <= 0 {
		return fmt.Errorf("pacing.max_concurrent_per_host must be > 0")
	}
	if c.Pacing.RPM <= 0 {
		return fmt.Errorf("pacing.rpm must be > 0")
	}
	if c.Pacing.PageIntervalMS < 0 {
		return fmt.Errorf("pacing.page_interval_ms must be >= 0")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must be >= 0")
	}
	if c.Retry.BackoffMinMS <= 0 {
		return fmt.Errorf("retry.backoff_min_ms must be > 0")
	}
	if c.Retry.BackoffMaxMS <= 0 {
		return fmt.Errorf("retry.backoff_max_ms must be > 0")
	}
	if c.Retry.BackoffMinMS > c.Retry.BackoffMaxMS {
		return fmt.Errorf("retry.backoff_min_ms must be <= retry.backoff_max_ms")
	}
	if c.Retry.JitterPct < 0 || c.Retry.JitterPct > 100 {
		return fmt.Errorf("retry.jitter_pct must be between 0 and 100")
	}
	if c.Pagination.MaxPages <= 0 {
		return fmt.Errorf("pagination.max_pages must be > 0")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.SelectorsFile == "" {
		return fmt.Errorf("selectors_file is required")
	}
	if c.Storage.Driver != "csv" && c.Storage.Driver != "mssql" {
		return fmt.Errorf("storage.driver must be 'csv' or 'mssql'")
	}
	if c.Storage.Driver == "mssql" {
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when driver is 'mssql'")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
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
func (c *Config) GetPageTimeout() time.Duration {
	return time.Duration(c.Browser.PageTimeoutS) * time.Second
}

func (c *Config) GetWaitLoadTimeout() time.Duration {
	return time.Duration(c.Browser.WaitLoadS) * time.Second
}

func (c *Config) GetDOMStableDelay() time.Duration {
	return time.Duration(c.Browser.DOMStableMS) * time.Millisecond
}

func (c *Config) GetConsentWait() time.Duration {
	return time.Duration(c.Browser.ConsentWaitS) * time.Second
}

func (c *Config) GetPageInterval() time.Duration {
	return time.Duration(c.Pacing.PageIntervalMS) * time.Millisecond
}

func (c *Config) GetBackoffMin() time.Duration {
	return time.Duration(c.Retry.BackoffMinMS) * time.Millisecond
}

func (c *Config) GetBackoffMax() time.Duration {
	return time.Duration(c.Retry.BackoffMaxMS) * time.Millisecond
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}
