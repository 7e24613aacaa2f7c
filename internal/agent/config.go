package agent

import (
	"time"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 1500
	defaultTimeout     = 60 * time.Second
	defaultUserAgent   = "gitfolio/0.1.0 (https://github.com/KWCapstoneGitFolio/realGitFolio)"
)

// Config represents LLM agent configuration
type Config struct {
	APIKey      string  `yaml:"api_key" env:"AGENT_API_KEY"`
	Model       string  `yaml:"model" env:"AGENT_MODEL"`
	Temperature float32 `yaml:"temperature" env:"AGENT_TEMPERATURE"`
	MaxTokens   int     `yaml:"max_tokens" env:"AGENT_MAX_TOKENS"`

	BaseURL   string        `yaml:"base_url" env:"AGENT_BASE_URL"` // custom API endpoint
	Timeout   time.Duration `yaml:"timeout" env:"AGENT_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"AGENT_USER_AGENT"`
	IsTest    bool          `yaml:"is_test" env:"AGENT_IS_TEST"`
}

func (c *Config) PrepareAndValidate() error {
	if c.APIKey == "" {
		return errm.Wrap(model.ErrMissingConfig, "agent api key is required")
	}

	c.Temperature = lang.Check(c.Temperature, defaultTemperature)
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}
