package common

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cauldron/models"
)

// LoadConfig reads --config when given and applies flag overrides.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.Bool("quiet") {
		cfg.Logging.Level = "none"
	}
	if c.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("image-cache") {
		cfg.Images.CacheDir = c.String("image-cache")
	}
	if c.IsSet("max-concurrent") {
		cfg.Images.MaxConcurrent = c.Int("max-concurrent")
	}
	if c.IsSet("timeout") {
		cfg.Fetch.Timeout = c.Duration("timeout")
	}
	return cfg, nil
}
