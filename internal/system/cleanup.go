package system

import (
	"time"

	coresys "github.com/bitworld/bitworld/internal/core/system"
)

type despawnFlusher interface {
	FlushDespawns() int
}

// CleanupSystem removes entities that handlers marked for despawn during the
// tick. Phase 4 (Cleanup).
type CleanupSystem struct {
	world despawnFlusher
}

func NewCleanupSystem(world despawnFlusher) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDespawns()
}
