package overview

import "github.com/maxbolgarin/lang"

const defaultCommitCount = 20

// Config represents overview pipeline configuration
type Config struct {
	// DefaultCommitCount is used when a request does not specify how many
	// commits to analyze
	DefaultCommitCount int `yaml:"default_commit_count" env:"OVERVIEW_DEFAULT_COMMIT_COUNT"`
}

func (c *Config) PrepareAndValidate() error {
	c.DefaultCommitCount = lang.Check(c.DefaultCommitCount, defaultCommitCount)
	return nil
}
