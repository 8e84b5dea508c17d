package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultLogDir          = "~/.local/share/autotranscription/logs"
	defaultModelCacheDir   = "~/.cache/autotranscription/models"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultPythonBinary    = "python3"
	defaultModelSize       = "base"
	defaultCacheMaxEntries = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:        defaultLogDir,
			ModelCacheDir: defaultModelCacheDir,
		},
		Engine: Engine{
			Python:    defaultPythonBinary,
			ModelSize: defaultModelSize,
		},
		Cache: Cache{
			Path:       defaultCacheDBPath(),
			MaxEntries: defaultCacheMaxEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCacheDBPath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "autotranscription", "results.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/autotranscription/results.db"
	}
	return filepath.Join(home, ".cache", "autotranscription", "results.db")
}
