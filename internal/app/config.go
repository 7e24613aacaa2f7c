package app

import (
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/agent"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/overview"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/provider/github"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/server"
	"github.com/KWCapstoneGitFolio/realGitFolio/internal/storage"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"
)

// Config represents the main application configuration
type Config struct {
	Server   server.Config   `yaml:"server"`
	Provider github.Config   `yaml:"provider"`
	Agent    agent.Config    `yaml:"agent"`
	Storage  storage.Config  `yaml:"storage"`
	Overview overview.Config `yaml:"overview"`
}

// LoadConfig reads configuration from an optional YAML file and from the
// environment. Environment variables take precedence over file values.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read config file")
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errm.Wrap(err, "failed to read environment")
	}

	return cfg, nil
}
