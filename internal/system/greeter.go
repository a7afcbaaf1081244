package system

import (
	"go.uber.org/zap"

	"github.com/bitworld/bitworld/internal/component"
	"github.com/bitworld/bitworld/internal/core/ecs"
)

// Greeter logs the name of every matched entity that has one. Entities that
// matched through another bit of the mask are skipped.
func Greeter[T ecs.ID, M ecs.Mask[M]](log *zap.Logger) ecs.Handler[T, M] {
	return func(_ M, entities []*ecs.Entity[T, M]) {
		for _, e := range entities {
			name, ok := ecs.Get[component.Name](e)
			if !ok {
				continue
			}
			log.Info("hello",
				zap.Uint64("entity", uint64(e.ID())),
				zap.String("name", name.Display()),
			)
		}
	}
}
