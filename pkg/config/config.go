package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FeedSource is one RSS/Atom feed to aggregate.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Yahoo struct {
		BaseURL   string        `yaml:"base_url"`
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"yahoo"`
	Finnhub struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"finnhub"`
	AlphaVantage struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout"`
		MinInterval time.Duration `yaml:"min_interval"`
	} `yaml:"alphavantage"`
	NewsAPI struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"newsapi"`
	Feeds struct {
		Financial    []FeedSource  `yaml:"financial"`
		AI           []FeedSource  `yaml:"ai"`
		Timeout      time.Duration `yaml:"timeout"`
		MaxFinancial int           `yaml:"max_financial"`
		MaxAI        int           `yaml:"max_ai"`
	} `yaml:"feeds"`
	Screener struct {
		Tickers []string      `yaml:"tickers"`
		Pause   time.Duration `yaml:"pause"`
	} `yaml:"screener"`
	Cache struct {
		QuoteTTL        time.Duration `yaml:"quote_ttl"`
		FundamentalsTTL time.Duration `yaml:"fundamentals_ttl"`
		SectorsTTL      time.Duration `yaml:"sectors_ttl"`
		NewsTTL         time.Duration `yaml:"news_ttl"`
		Redis           struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// API keys from the environment act as the default-credential set; per-user
// keys from the key store take precedence at request time.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.NewsAPI.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("SCREENER_TICKERS"); v != "" {
		c.Screener.Tickers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Yahoo.BaseURL == "" {
		c.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Yahoo.UserAgent == "" {
		// Yahoo rejects the default Go user agent.
		c.Yahoo.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Yahoo.Timeout == 0 {
		c.Yahoo.Timeout = 6 * time.Second
	}
	if c.Finnhub.BaseURL == "" {
		c.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Finnhub.Timeout == 0 {
		c.Finnhub.Timeout = 5 * time.Second
	}
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co"
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = 6 * time.Second
	}
	if c.AlphaVantage.MinInterval == 0 {
		c.AlphaVantage.MinInterval = 12 * time.Second
	}
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if c.NewsAPI.Timeout == 0 {
		c.NewsAPI.Timeout = 6 * time.Second
	}
	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 6 * time.Second
	}
	if c.Feeds.MaxFinancial == 0 {
		c.Feeds.MaxFinancial = 50
	}
	if c.Feeds.MaxAI == 0 {
		c.Feeds.MaxAI = 30
	}
	if c.Screener.Pause == 0 {
		c.Screener.Pause = 12 * time.Second
	}
	if c.Cache.QuoteTTL == 0 {
		c.Cache.QuoteTTL = 30 * time.Second
	}
	if c.Cache.FundamentalsTTL == 0 {
		c.Cache.FundamentalsTTL = 10 * time.Minute
	}
	if c.Cache.SectorsTTL == 0 {
		c.Cache.SectorsTTL = time.Hour
	}
	if c.Cache.NewsTTL == 0 {
		c.Cache.NewsTTL = 2 * time.Minute
	}
	if c.Cache.Redis.Port == 0 {
		c.Cache.Redis.Port = 6379
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Feeds.Financial) == 0 {
		return fmt.Errorf("feeds.financial cannot be empty")
	}
	if len(c.Feeds.AI) == 0 {
		return fmt.Errorf("feeds.ai cannot be empty")
	}
	if c.Feeds.MaxFinancial < 1 || c.Feeds.MaxAI < 1 {
		return fmt.Errorf("feed caps must be positive")
	}
	return nil
}
