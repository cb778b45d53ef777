package storage

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	councilerrors "boscoin.io/council/lib/errors"
)

// Config selects the leveldb storage, parsed from `file://<path>` or
// `memory://`.
type Config struct {
	Scheme string
	Path   string
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse storage config")
	}

	config := &Config{Scheme: parsed.Scheme}

	switch parsed.Scheme {
	case "memory":
	case "file":
		path := parsed.Host + parsed.Path
		if len(path) < 1 {
			return nil, councilerrors.InvalidStorageConfig.Clone().SetData("storage", s)
		}

		if !filepath.IsAbs(path) {
			var cwd string
			if cwd, err = os.Getwd(); err != nil {
				return nil, errors.Wrap(err, "failed to get current directory")
			}
			path = filepath.Join(cwd, path)
		}
		config.Path = filepath.Clean(path)
	default:
		return nil, councilerrors.InvalidStorageConfig.Clone().SetData("storage", s)
	}

	return config, nil
}
