package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type EngineConfig struct {
	Address string        `yaml:"address"`
	Timeout time.Duration `yaml:"timeout"`
}

const (
	_engineTimeoutDefault = 10 * time.Second
)

func (c *EngineConfig) Setup() error {
	if c.Address == "" {
		return fmt.Errorf("engine address is required")
	}
	if _, err := url.Parse(c.Address); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		c.Timeout = _engineTimeoutDefault
	}
	return nil
}

type SyncConfig struct {
	PriceInterval     time.Duration `yaml:"price_interval"`
	PortfolioInterval time.Duration `yaml:"portfolio_interval"`
}

const (
	// Cadences of the source dashboard: prices every 10s, portfolio every 5s.
	_priceIntervalDefault     = 10 * time.Second
	_portfolioIntervalDefault = 5 * time.Second
)

func (c *SyncConfig) Setup() {
	if c.PriceInterval <= 0 {
		c.PriceInterval = _priceIntervalDefault
	}
	if c.PortfolioInterval <= 0 {
		c.PortfolioInterval = _portfolioIntervalDefault
	}
}

type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

const (
	_displayCurrencyDefault = "USD"
)

func (c *DisplayConfig) Setup() {
	if c.Currency == "" {
		c.Currency = _displayCurrencyDefault
	}
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

const (
	_serverPortDefault = "8080"
)

func (c *ServerConfig) Setup() {
	if c.Port == "" {
		c.Port = _serverPortDefault
	}
}

type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Sync    SyncConfig    `yaml:"sync"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
}

func (c *Config) ValidateAndSetup() error {
	if err := c.Engine.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup engine cfg", err)
	}
	c.Sync.Setup()
	c.Display.Setup()
	c.Server.Setup()
	return nil
}

func LoadConfig(filename string) (Config, error) {
	var cfg Config
	input, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
