package config

import "sync/atomic"

// Store publishes Config snapshots to concurrent readers
// Readers get a value copy, so a frame never observes a half-applied change
type Store struct {
	ptr atomic.Pointer[Config]
}

// NewStore creates a store holding a clamped copy of cfg
func NewStore(cfg Config) *Store {
	s := &Store{}
	s.Store(cfg)
	return s
}

// Load returns the current snapshot
func (s *Store) Load() Config {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return Default()
}

// Store replaces the snapshot
func (s *Store) Store(cfg Config) {
	cfg.Clamp()
	s.ptr.Store(&cfg)
}

// Update applies fn to a copy of the current snapshot and publishes the result
// fn may run more than once under contention and must not have side effects
func (s *Store) Update(fn func(*Config)) Config {
	for {
		old := s.ptr.Load()
		next := Default()
		if old != nil {
			next = *old
		}
		fn(&next)
		next.Clamp()
		if s.ptr.CompareAndSwap(old, &next) {
			return next
		}
	}
}
