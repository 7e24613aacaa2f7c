package storage

import (
	"github.com/maxbolgarin/lang"
)

const defaultAddr = "localhost:6379"

// Config defines Redis connection settings
type Config struct {
	Addr     string `yaml:"addr" env:"STORAGE_ADDR"`
	Username string `yaml:"username" env:"STORAGE_USERNAME"`
	Password string `yaml:"password" env:"STORAGE_PASSWORD"`
	Database int    `yaml:"database" env:"STORAGE_DATABASE"`
}

func (c *Config) PrepareAndValidate() error {
	c.Addr = lang.Check(c.Addr, defaultAddr)
	return nil
}
