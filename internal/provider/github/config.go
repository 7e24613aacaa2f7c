package github

import (
	"time"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultGraphQLURL = "https://api.github.com/graphql"
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "gitfolio/0.1.0 (https://github.com/KWCapstoneGitFolio/realGitFolio)"
)

// Config represents GitHub provider configuration
type Config struct {
	Token      string        `yaml:"token" env:"GITHUB_TOKEN"`
	GraphQLURL string        `yaml:"graphql_url" env:"GITHUB_GRAPHQL_URL"`
	BaseURL    string        `yaml:"base_url" env:"GITHUB_BASE_URL"` // REST API base, for GitHub Enterprise
	Timeout    time.Duration `yaml:"timeout" env:"GITHUB_TIMEOUT"`
	UserAgent  string        `yaml:"user_agent" env:"GITHUB_USER_AGENT"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return errm.Wrap(model.ErrMissingConfig, "github token is required")
	}

	c.GraphQLURL = lang.Check(c.GraphQLURL, defaultGraphQLURL)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}
