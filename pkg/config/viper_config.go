package config

import (
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ViperConfig reads keys from a config file (any format viper supports).
// Environment variables with the same name take precedence over the file.
type ViperConfig struct {
	keyReader
	v          *viper.Viper
	ConfigPath string
}

func NewViperConfig(path string) *ViperConfig {
	v := viper.New()
	v.AutomaticEnv()

	c := &ViperConfig{v: v, ConfigPath: path}
	c.keyReader = keyReader{lookup: v.GetString}
	return c
}

func (c *ViperConfig) LoadFromPath(path string) error {
	c.ConfigPath = path
	return c.Load()
}

func (c *ViperConfig) Load() error {
	path, err := homedir.Expand(c.ConfigPath)
	if err != nil {
		return errors.Wrapf(err, "unable to expand config path %s", c.ConfigPath)
	}

	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed reading config file %s", path)
	}

	return nil
}
