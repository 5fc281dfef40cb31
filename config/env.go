package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv
const (
	EnvEnabled       = "DANMAKU_ENABLED"
	EnvLanes         = "DANMAKU_LANES"
	EnvSpeed         = "DANMAKU_SPEED"
	EnvDuration      = "DANMAKU_DURATION"
	EnvOpacity       = "DANMAKU_OPACITY"
	EnvFontScale     = "DANMAKU_FONT_SCALE"
	EnvSound         = "DANMAKU_SOUND"
	EnvMaxBacklog    = "DANMAKU_MAX_BACKLOG"
	EnvBacklogPolicy = "DANMAKU_BACKLOG_POLICY"
)

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment
// Variables already set are not overridden; a missing file is ignored
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays DANMAKU_* variables onto cfg and clamps the result
// Malformed values are skipped and reported together
func ApplyEnv(cfg *Config) error {
	var errs []error

	envBool(EnvEnabled, &cfg.Enabled, &errs)
	envBool(EnvSound, &cfg.Sound, &errs)
	envInt(EnvLanes, &cfg.LaneCount, &errs)
	envInt(EnvMaxBacklog, &cfg.Backlog.Max, &errs)
	envFloat(EnvSpeed, &cfg.SpeedMultiplier, &errs)
	envFloat(EnvDuration, &cfg.TargetDuration, &errs)
	envFloat(EnvOpacity, &cfg.Opacity, &errs)
	envFloat(EnvFontScale, &cfg.FontScale, &errs)

	if raw, ok := lookup(EnvBacklogPolicy); ok {
		p := Policy(strings.ToLower(raw))
		if p.Valid() {
			cfg.Backlog.Policy = p
		} else {
			errs = append(errs, fmt.Errorf("%s: unknown policy %q", EnvBacklogPolicy, raw))
		}
	}

	cfg.Clamp()
	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func envBool(name string, dst *bool, errs *[]error) {
	raw, ok := lookup(name)
	if !ok {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = v
}

func envInt(name string, dst *int, errs *[]error) {
	raw, ok := lookup(name)
	if !ok {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = v
}

func envFloat(name string, dst *float64, errs *[]error) {
	raw, ok := lookup(name)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = v
}
