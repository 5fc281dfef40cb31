// Package config holds the user-tunable overlay settings
// A Config is a plain value; Store shares it between the frame loop and the command surface
package config

import "math"

// Policy selects which item is dropped when the backlog is full
type Policy string

const (
	PolicyDropOldest Policy = "drop-oldest"
	PolicyDropNewest Policy = "drop-newest"
)

// Bounds
const (
	MinLanes       = 1
	MaxLanes       = 20
	MinSpeed       = 0.1
	MaxSpeed       = 5.0
	MinDuration    = 1.0
	MaxDuration    = 30.0
	MinOpacity     = 0.0
	MaxOpacity     = 1.0
	MinFontScale   = 0.5
	MaxFontScale   = 2.0
	MaxBacklogCap  = 100000
	DefaultBacklog = 256
)

// Config is one snapshot of the overlay settings
type Config struct {
	Enabled         bool    `toml:"enabled"`
	LaneCount       int     `toml:"lanes"`
	SpeedMultiplier float64 `toml:"speed"`
	TargetDuration  float64 `toml:"duration"` // seconds to cross the screen at speed 1.0
	Opacity         float64 `toml:"opacity"`
	FontScale       float64 `toml:"font_scale"`

	ShowUser   bool `toml:"show_user"`
	ShowSystem bool `toml:"show_system"`
	ChatLog    bool `toml:"chat_log"` // plain scrolling log alongside the overlay
	Sound      bool `toml:"sound"`

	Backlog Backlog `toml:"backlog"`
}

// Backlog bounds the number of items waiting for a lane
type Backlog struct {
	Max    int    `toml:"max"` // 0 disables the cap
	Policy Policy `toml:"policy"`
}

// Default returns the stock settings
func Default() Config {
	return Config{
		Enabled:         true,
		LaneCount:       10,
		SpeedMultiplier: 1.0,
		TargetDuration:  5.0,
		Opacity:         0.8,
		FontScale:       1.0,
		ShowUser:        true,
		ShowSystem:      false,
		ChatLog:         false,
		Sound:           false,
		Backlog: Backlog{
			Max:    DefaultBacklog,
			Policy: PolicyDropOldest,
		},
	}
}

// Clamp forces every numeric field into range and normalises the policy
func (c *Config) Clamp() {
	c.LaneCount = clampInt(c.LaneCount, MinLanes, MaxLanes)
	c.SpeedMultiplier = clampFloat(c.SpeedMultiplier, MinSpeed, MaxSpeed)
	c.TargetDuration = clampFloat(c.TargetDuration, MinDuration, MaxDuration)
	c.Opacity = clampFloat(c.Opacity, MinOpacity, MaxOpacity)
	c.FontScale = clampFloat(c.FontScale, MinFontScale, MaxFontScale)
	c.Backlog.Max = clampInt(c.Backlog.Max, 0, MaxBacklogCap)
	if !c.Backlog.Policy.Valid() {
		c.Backlog.Policy = PolicyDropOldest
	}
}

// Clamped returns a clamped copy
func (c Config) Clamped() Config {
	c.Clamp()
	return c
}

// Valid reports whether p names a known policy
func (p Policy) Valid() bool {
	return p == PolicyDropOldest || p == PolicyDropNewest
}

// Alpha converts opacity to an 8-bit alpha channel
func (c Config) Alpha() uint8 {
	return uint8(clampFloat(c.Opacity, MinOpacity, MaxOpacity) * 255)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampFloat maps NaN to lo
func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
