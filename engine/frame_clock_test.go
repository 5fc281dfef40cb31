package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/danmaku/constants"
)

func TestFrameClockFirstTickIsNominal(t *testing.T) {
	clock := NewFrameClock(NewMockTimeProvider(time.Unix(1000, 0)))
	if dt := clock.Tick(); dt != constants.NominalFrameDelta {
		t.Errorf("Expected first tick %v, got %v", constants.NominalFrameDelta, dt)
	}
}

func TestFrameClockDeltas(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"Normal frame", 16 * time.Millisecond, 0.016},
		{"No time passed", 0, 0},
		{"Stall clamps", 5 * time.Second, constants.MaxFrameDelta},
		{"Exactly at max", 100 * time.Millisecond, constants.MaxFrameDelta},
		{"Clock went backwards", -time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTimeProvider(time.Unix(1000, 0))
			clock := NewFrameClock(mock)
			clock.Tick()

			mock.Advance(tt.elapsed)
			if got := clock.Tick(); got != tt.want {
				t.Errorf("Expected dt %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFrameClockReset(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(1000, 0))
	clock := NewFrameClock(mock)
	clock.Tick()

	mock.Advance(50 * time.Millisecond)
	clock.Reset()
	if dt := clock.Tick(); dt != constants.NominalFrameDelta {
		t.Errorf("Expected nominal delta after reset, got %v", dt)
	}
}
