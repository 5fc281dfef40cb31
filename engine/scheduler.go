package engine

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/danmaku/components"
	"github.com/lixenwraith/danmaku/config"
	"github.com/lixenwraith/danmaku/logging"
	"github.com/lixenwraith/danmaku/render"
	"github.com/lixenwraith/danmaku/status"
	"github.com/lixenwraith/danmaku/systems"
)

// Stats is a point-in-time view of scheduler counters
type Stats struct {
	Arrived  int64
	Placed   int64
	Retired  int64
	Dropped  int64
	Rejected int64
	Frames   int64
	Active   int
	Backlog  int
	Lanes    int
}

// LaneSnapshot describes one lane without exposing the table itself
type LaneSnapshot struct {
	Index      int
	Occupied   bool
	OccupantID uuid.UUID
}

// Scheduler owns the message queue and lane table and runs one frame at a time
// Push may be called from any goroutine; Frame is expected on a single loop
type Scheduler struct {
	mu       sync.Mutex
	measurer render.Measurer
	clock    TimeProvider
	queue    *MessageQueue
	lanes    *components.LaneTable
	observer Observer

	registry  *status.Registry
	arrived   *atomic.Int64
	placed    *atomic.Int64
	retired   *atomic.Int64
	dropped   *atomic.Int64
	rejected  *atomic.Int64
	frames    *atomic.Int64
	active    *atomic.Int64
	backlog   *atomic.Int64
	laneCount *atomic.Int64
	rebuilds  *atomic.Int64
	frameDt   *status.AtomicFloat
	fps       *status.AtomicFloat
}

// NewScheduler builds a scheduler measuring text with measurer
// A nil clock uses the monotonic system clock; a nil registry gets a private one
func NewScheduler(measurer render.Measurer, clock TimeProvider, registry *status.Registry) *Scheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if registry == nil {
		registry = status.NewRegistry()
	}
	s := &Scheduler{
		measurer: measurer,
		clock:    clock,
		queue:    NewMessageQueue(),
		lanes:    components.NewLaneTable(0),
		observer: NopObserver{},
		registry: registry,
	}

	s.arrived = registry.Ints.Get(status.KeyArrived)
	s.placed = registry.Ints.Get(status.KeyPlaced)
	s.retired = registry.Ints.Get(status.KeyRetired)
	s.dropped = registry.Ints.Get(status.KeyDropped)
	s.rejected = registry.Ints.Get(status.KeyRejected)
	s.frames = registry.Ints.Get(status.KeyFrames)
	s.active = registry.Ints.Get(status.KeyActive)
	s.backlog = registry.Ints.Get(status.KeyBacklog)
	s.laneCount = registry.Ints.Get(status.KeyLanes)
	s.rebuilds = registry.Ints.Get(status.KeyRebuilds)
	s.frameDt = registry.Floats.Get(status.KeyFrameDelta)
	s.fps = registry.Floats.Get(status.KeyFPS)

	return s
}

// SetObserver installs o; nil restores the no-op observer
func (s *Scheduler) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// Registry exposes the metric registry the scheduler publishes into
func (s *Scheduler) Registry() *status.Registry {
	return s.registry
}

// Push enqueues payload as a new unplaced item
// Returns false when the scheduler is disabled or the backlog refused the arrival
func (s *Scheduler) Push(cfg config.Config, payload string) (*components.Item, bool) {
	if !cfg.Enabled {
		return nil, false
	}

	item := components.NewItem(payload, s.clock.Now(), cfg.TargetDuration)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.arrived.Add(1)
	dropped, accepted := s.queue.Push(item, cfg.Backlog.Max, cfg.Backlog.Policy)
	s.reportDropped(dropped)
	s.backlog.Store(int64(s.queue.Backlog()))

	return item, accepted
}

// Frame advances every placed item by dt seconds, retires the ones that left the screen,
// then tries to place waiting items in arrival order
// Returns draw commands for all placed items, or nil when disabled
func (s *Scheduler) Frame(cfg config.Config, dt float64, geom render.Geometry) []render.DrawCommand {
	if !cfg.Enabled {
		return nil
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames.Add(1)
	s.frameDt.Store(dt)
	if dt > 0 {
		s.fps.Store(1 / dt)
	}

	if s.lanes.Resize(cfg.LaneCount) {
		s.rebuilds.Add(1)
		s.laneCount.Store(int64(s.lanes.Len()))
		logging.Logger().Debug("lane table rebuilt", "lanes", s.lanes.Len())
	}

	s.advance(dt)
	s.reportDropped(s.queue.Enforce(cfg.Backlog.Max, cfg.Backlog.Policy))
	s.place(cfg, geom)

	s.active.Store(int64(s.queue.Active()))
	s.backlog.Store(int64(s.queue.Backlog()))

	return s.drawCommands(cfg)
}

// advance moves placed items and removes the ones that are fully off-screen
func (s *Scheduler) advance(dt float64) {
	s.queue.Each(func(it *components.Item) {
		if !it.Placed() {
			return
		}
		systems.Advance(it, dt)
		if systems.OffScreen(it) {
			it.Retire()
		}
	})

	for _, it := range s.queue.Sweep(func(it *components.Item) bool {
		return it.State() == components.ItemRetired
	}) {
		s.retired.Add(1)
		s.observer.ItemRetired(it)
	}
}

// place offers every waiting item to the allocator once
func (s *Scheduler) place(cfg config.Config, geom render.Geometry) {
	if !geom.Valid() || s.measurer == nil {
		return
	}
	screenWidth := float64(geom.Width)

	s.queue.Each(func(it *components.Item) {
		if it.State() != components.ItemUnplaced {
			return
		}

		width := s.measurer.Measure(it.Payload, cfg.FontScale)
		if width < 0 || math.IsNaN(width) {
			width = 0
		}
		velocity := systems.Velocity(screenWidth, width, it.TargetDuration, cfg.SpeedMultiplier)
		if velocity <= 0 {
			return
		}

		lane, ok := systems.SelectLane(screenWidth, width, velocity, s.lanes)
		if !ok {
			s.rejected.Add(1)
			return
		}

		if !it.Place(lane, width, velocity, screenWidth, geom.LaneY(lane)) {
			return
		}
		s.lanes.Assign(lane, it)
		s.placed.Add(1)
		s.observer.ItemPlaced(it)
		logging.Logger().Debug("item placed", "id", it.ID, "lane", lane, "width", width, "velocity", velocity)
	})
}

func (s *Scheduler) drawCommands(cfg config.Config) []render.DrawCommand {
	alpha := cfg.Alpha()
	cmds := make([]render.DrawCommand, 0, s.queue.Len())
	s.queue.Each(func(it *components.Item) {
		if !it.Placed() {
			return
		}
		cmds = append(cmds, render.DrawCommand{
			ID:    it.ID,
			Text:  it.Payload,
			X:     it.PosX(),
			Y:     it.PosY(),
			Alpha: alpha,
			Scale: cfg.FontScale,
			Lane:  it.Lane(),
		})
	})
	return cmds
}

func (s *Scheduler) reportDropped(items []*components.Item) {
	for _, it := range items {
		s.dropped.Add(1)
		s.observer.ItemDropped(it)
		logging.Logger().Warn("backlog full, item dropped", "id", it.ID)
	}
}

// Items returns every queued item in arrival order
func (s *Scheduler) Items() []*components.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Items()
}

// Lanes reports each lane's live occupant
func (s *Scheduler) Lanes() []LaneSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LaneSnapshot, s.lanes.Len())
	for i := range out {
		out[i].Index = i
		if occ := s.lanes.At(i).Occupant(); occ != nil {
			out[i].Occupied = true
			out[i].OccupantID = occ.ID
		}
	}
	return out
}

// Backlog counts items still waiting for a lane
func (s *Scheduler) Backlog() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Backlog()
}

// Active counts items currently on screen
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Active()
}

// Clear discards every item and frees all lanes
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.Clear()
	s.lanes = components.NewLaneTable(s.lanes.Len())
	s.active.Store(0)
	s.backlog.Store(0)
	logging.Logger().Info("scheduler cleared")
}

// Stats reads every counter under the scheduler lock
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Arrived:  s.arrived.Load(),
		Placed:   s.placed.Load(),
		Retired:  s.retired.Load(),
		Dropped:  s.dropped.Load(),
		Rejected: s.rejected.Load(),
		Frames:   s.frames.Load(),
		Active:   s.queue.Active(),
		Backlog:  s.queue.Backlog(),
		Lanes:    s.lanes.Len(),
	}
}
