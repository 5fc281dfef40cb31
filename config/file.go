package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lixenwraith/danmaku/toml"
)

const fileHeader = "# danmaku overlay settings\n# Values outside their range are clamped on load\n\n"

// LoadFile reads settings from a TOML file layered over Default
// A missing file is not an error; the defaults are returned
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Clamp()
	return cfg, nil
}

// SaveFile writes cfg atomically via a temp file in the same directory
func SaveFile(path string, cfg Config) error {
	cfg.Clamp()
	body, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	buf.Write(body)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// DefaultPath returns the per-user settings file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "danmaku.toml"
	}
	return filepath.Join(dir, "danmaku", "danmaku.toml")
}
