package status

import "sync/atomic"

// MaxStringLen bounds stored strings so the status bar never wraps
const MaxStringLen = 24

// AtomicString holds a short label such as a source connection state
// Zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncating on a rune boundary to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && val[cut]&0xC0 == 0x80 {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

// Load returns the stored string, empty before the first Store
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
