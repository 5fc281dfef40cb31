// Package source feeds chat arrivals to the scheduler from line streams and WebSocket feeds.
package source

import "github.com/lixenwraith/danmaku/config"

// Kind separates user chat from system notices
type Kind int

const (
	KindUser Kind = iota
	KindSystem
)

func (k Kind) String() string {
	if k == KindSystem {
		return "system"
	}
	return "user"
}

// Arrival is one sanitised chat line
type Arrival struct {
	Text   string
	Author string
	Kind   Kind
}

// Filter reports whether cfg wants arrivals of this kind shown
func Filter(cfg config.Config, a Arrival) bool {
	if a.Text == "" {
		return false
	}
	switch a.Kind {
	case KindSystem:
		return cfg.ShowSystem
	default:
		return cfg.ShowUser
	}
}
