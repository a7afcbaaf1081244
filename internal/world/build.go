package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bitworld/bitworld/internal/component"
	"github.com/bitworld/bitworld/internal/core/ecs"
	"github.com/bitworld/bitworld/internal/core/event"
	"github.com/bitworld/bitworld/internal/data"
	"github.com/bitworld/bitworld/internal/scripting"
	"github.com/bitworld/bitworld/internal/system"
)

var (
	ErrScriptUnavailable = errors.New("script not available")
	ErrNegativeCount     = errors.New("negative entity count")
)

// Deps are the collaborators a scene world is wired to.
type Deps struct {
	Catalog *component.Catalog
	Scripts *scripting.Engine // nil rejects "script" handlers
	Bus     *event.Bus
	Log     *zap.Logger
}

// Build creates a world named name from a scene: the scene's component kinds
// are registered in order, its entities spawned and its systems added. An
// entity count of 0 spawns one entity, the same as in a parsed scene file.
func Build[T ecs.ID, M ecs.Mask[M]](name string, scene *data.Scene, deps Deps) (*ecs.World[T, M], error) {
	if deps.Catalog == nil {
		deps.Catalog = component.NewCatalog()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	reg := ecs.NewRegistry()
	if err := deps.Catalog.Register(reg, scene.Components...); err != nil {
		return nil, err
	}
	w := ecs.NewWorld[T, M](name,
		ecs.WithRegistry(reg),
		ecs.WithEventBus(deps.Bus),
		ecs.WithLogger(deps.Log),
	)

	for i, spawn := range scene.Entities {
		count := spawn.Count
		switch {
		case count < 0:
			return nil, fmt.Errorf("entities[%d]: %w: %d", i, ErrNegativeCount, count)
		case count == 0:
			count = 1
		}
		comps := make([]any, 0, len(spawn.Components))
		for _, c := range spawn.Components {
			v, err := deps.Catalog.Decode(c.Type, &c.Value)
			if err != nil {
				return nil, fmt.Errorf("entities[%d]: %w", i, err)
			}
			comps = append(comps, v)
		}
		for n := 0; n < count; n++ {
			if _, err := w.Spawn(comps...); err != nil {
				return nil, fmt.Errorf("entities[%d]: %w", i, err)
			}
		}
	}

	for _, entry := range scene.Systems {
		mask, err := QueryMask[M](reg, deps.Catalog, entry.Query...)
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", entry.Name, err)
		}
		if mask.IsZero() {
			deps.Log.Warn("system never matches",
				zap.String("system", entry.Name),
				zap.Strings("query", entry.Query),
			)
		}
		h, err := handler(w, entry, deps)
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", entry.Name, err)
		}
		if entry.Match == data.MatchAll {
			w.AddSystemAll(mask, h)
		} else {
			w.AddSystem(mask, h)
		}
	}

	deps.Log.Info("world built",
		zap.String("world", name),
		zap.Int("components", reg.Len()),
		zap.Int("entities", w.Len()),
		zap.Int("systems", w.Systems()),
	)
	return w, nil
}

// QueryMask unions the masks of the named kinds. Kinds that are not
// registered, or whose index lies beyond M's width, add nothing.
func QueryMask[M ecs.Mask[M]](reg *ecs.Registry, catalog *component.Catalog, kinds ...string) (M, error) {
	var mask M
	for _, kind := range kinds {
		t, err := catalog.Type(kind)
		if err != nil {
			return mask, err
		}
		mask = mask.Union(ecs.MaskOfType[M](reg, t))
	}
	return mask, nil
}

func handler[T ecs.ID, M ecs.Mask[M]](w *ecs.World[T, M], entry data.SystemEntry, deps Deps) (ecs.Handler[T, M], error) {
	log := deps.Log.With(zap.String("system", entry.Name))
	switch entry.Handler {
	case data.HandlerGreeter:
		return system.Greeter[T, M](log), nil
	case data.HandlerAging:
		return system.Aging(w, entry.MaxYears, log), nil
	case data.HandlerScript:
		if deps.Scripts == nil || !deps.Scripts.Has(entry.Script) {
			return nil, fmt.Errorf("%w: %s", ErrScriptUnavailable, entry.Script)
		}
		return system.Scripted[T, M](deps.Scripts, entry.Script, log), nil
	}
	return nil, fmt.Errorf("unknown handler %q", entry.Handler)
}
