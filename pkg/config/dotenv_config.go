package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// DotenvConfig loads a dotenv file into the process environment and reads
// keys from the environment. A blank DotenvPath means only the existing
// environment is used.
type DotenvConfig struct {
	keyReader
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path, keyReader: keyReader{lookup: os.Getenv}}
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}

	path, err := homedir.Expand(c.DotenvPath)
	if err != nil {
		return errors.Wrapf(err, "unable to expand dotenv path %s", c.DotenvPath)
	}

	if err := gotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed loading dotenv file %s", path)
	}

	return nil
}
