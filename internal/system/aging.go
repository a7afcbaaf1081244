package system

import (
	"go.uber.org/zap"

	"github.com/bitworld/bitworld/internal/component"
	"github.com/bitworld/bitworld/internal/core/ecs"
)

// Aging adds a year to every matched Age component. Entities older than
// maxYears are queued for despawn; maxYears 0 keeps everyone.
func Aging[T ecs.ID, M ecs.Mask[M]](w *ecs.World[T, M], maxYears int, log *zap.Logger) ecs.Handler[T, M] {
	return func(_ M, entities []*ecs.Entity[T, M]) {
		for _, e := range entities {
			var years int
			if !ecs.Modify(e, func(a *component.Age) {
				a.Years++
				years = a.Years
			}) {
				continue
			}
			if maxYears > 0 && years > maxYears {
				w.MarkForDespawn(e.ID())
				log.Debug("entity aged out",
					zap.Uint64("entity", uint64(e.ID())),
					zap.Int("years", years),
				)
			}
		}
	}
}
