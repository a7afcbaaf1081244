package system

import (
	"time"

	"github.com/bitworld/bitworld/internal/config"
	coresys "github.com/bitworld/bitworld/internal/core/system"
)

// Scheduler is the stepping surface of an ecs.World.
type Scheduler interface {
	RunAll() int
	Step() bool
	Rewind()
	Cursor() int
	Systems() int
}

// ScheduleSystem drives a world's registered systems once per tick.
// Phase 2 (Update).
//
// In config.ModeAll every system runs each tick. In config.ModeStep one
// system runs per tick and the cursor wraps after the last one.
type ScheduleSystem struct {
	world Scheduler
	mode  string
}

func NewScheduleSystem(world Scheduler, mode string) *ScheduleSystem {
	return &ScheduleSystem{world: world, mode: mode}
}

func (s *ScheduleSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScheduleSystem) Update(_ time.Duration) {
	if s.mode != config.ModeStep {
		s.world.RunAll()
		return
	}
	if s.world.Systems() == 0 {
		return
	}
	if s.world.Cursor() >= s.world.Systems() {
		s.world.Rewind()
	}
	s.world.Step()
}
