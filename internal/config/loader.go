package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPaths are tried in order when CONFIG_PATH is unset. A dotenv file
// is read with the same tags as YAML.
var defaultPaths = []string{"./config.yaml", "./config.yml", "./.env"}

// Load reads configuration with priority ENV > file > env-default tags.
// The file is CONFIG_PATH when set, which must then exist; otherwise the
// first of defaultPaths that exists. Without any file only ENV and defaults
// apply. The result is validated and Bot.Location resolved.
func Load() (*Config, error) {
	path, err := resolvePath(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config: file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, p := range defaultPaths {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: file %s: %w", p, err)
		}
	}
	return "", nil
}
