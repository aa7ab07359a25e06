package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "xlate.toml"

// projectConfig is the content of xlate.toml. Command-line flags win over
// every field.
type projectConfig struct {
	Translate translateConfig `toml:"translate"`
	Trace     traceConfig     `toml:"trace"`
	Cache     cacheConfig     `toml:"cache"`
	path      string
}

type translateConfig struct {
	Jobs   int      `toml:"jobs"`
	Passes []string `toml:"passes"`
	UI     string   `toml:"ui"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// findConfig walks up from startDir looking for xlate.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadConfig decodes path and rejects keys it does not know, so a typo does
// not silently fall back to a default.
func loadConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Translate.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [translate].jobs must not be negative", path)
	}
	if meta.IsDefined("cache", "dir") && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	cfg.path = path
	return cfg, nil
}

// discoverConfig loads the xlate.toml governing docPath, if any.
func discoverConfig(docPath string) (projectConfig, bool, error) {
	path, ok, err := findConfig(filepath.Dir(docPath))
	if err != nil || !ok {
		return projectConfig{}, false, err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return projectConfig{}, true, err
	}
	return cfg, true, nil
}

type configKey struct{}

type sessionKey struct{}

func withConfig(ctx context.Context, cfg projectConfig) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) (projectConfig, bool) {
	if ctx == nil {
		return projectConfig{}, false
	}
	cfg, ok := ctx.Value(configKey{}).(projectConfig)
	return cfg, ok
}

func withSession(ctx context.Context, s *traceSession) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFromContext(ctx context.Context) *traceSession {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionKey{}).(*traceSession)
	return s
}
