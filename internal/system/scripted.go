package system

import (
	"go.uber.org/zap"

	"github.com/bitworld/bitworld/internal/core/ecs"
	"github.com/bitworld/bitworld/internal/scripting"
)

// Scripted hands the matched entities to the Lua function fn.
func Scripted[T ecs.ID, M ecs.Mask[M]](engine *scripting.Engine, fn string, log *zap.Logger) ecs.Handler[T, M] {
	return func(mask M, entities []*ecs.Entity[T, M]) {
		views := make([]scripting.EntityView, len(entities))
		for i, e := range entities {
			views[i] = scripting.EntityView{ID: uint64(e.ID()), Components: e.Len()}
		}
		n, err := engine.Call(fn, mask.String(), views)
		if err != nil {
			log.Error("lua system error", zap.String("func", fn), zap.Error(err))
			return
		}
		log.Debug("lua system", zap.String("func", fn), zap.Int("result", n))
	}
}
