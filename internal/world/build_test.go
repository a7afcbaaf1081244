package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bitworld/bitworld/internal/component"
	"github.com/bitworld/bitworld/internal/core/ecs"
	"github.com/bitworld/bitworld/internal/data"
	"github.com/bitworld/bitworld/internal/scripting"
	"github.com/bitworld/bitworld/internal/world"
)

const scene = `
components: [Name, Age]
entities:
  - count: 2
    components:
      - type: Name
        value: {value: ann}
      - type: Age
        value: {years: 30}
  - components:
      - type: Name
        value: {value: bob}
  - components:
      - type: Health
        value: {hp: 5, max: 5}
systems:
  - name: greet
    query: [Name]
    handler: greeter
  - name: census
    query: [Name, Age]
    match: all
    handler: script
    script: census
`

func mustScene(t *testing.T, src string) *data.Scene {
	t.Helper()
	s, err := data.ParseScene([]byte(src))
	require.NoError(t, err)
	return s
}

func TestBuild(t *testing.T) {
	engine, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer engine.Close()
	require.NoError(t, engine.Load(`function census(ctx) return #ctx.entities end`))

	core, logs := observer.New(zapcore.DebugLevel)
	w, err := world.Build[uint8, ecs.Mask8]("demo", mustScene(t, scene), world.Deps{
		Scripts: engine,
		Log:     zap.New(core),
	})
	require.NoError(t, err)

	assert.Equal(t, "demo", w.Name())
	assert.Equal(t, 4, w.Len(), "health-only entity still spawns, empty")
	assert.Equal(t, 2, w.Systems())

	e, ok := w.Entity(4)
	require.True(t, ok)
	assert.True(t, e.Mask().IsZero(), "Health is not registered")
	assert.Len(t, logs.FilterMessage("component dropped").All(), 1)

	ann, ok := w.Entity(1)
	require.True(t, ok)
	name, ok := ecs.Get[component.Name](ann)
	require.True(t, ok)
	assert.Equal(t, "ann", name.Value)
	age, ok := ecs.Get[component.Age](ann)
	require.True(t, ok)
	assert.Equal(t, 30, age.Years)

	assert.Equal(t, 2, w.RunAll())
	assert.Len(t, logs.FilterMessage("hello").All(), 3)

	census := logs.FilterMessage("lua system").All()
	require.Len(t, census, 1)
	assert.Equal(t, int64(2), census[0].ContextMap()["result"], "match all skips bob")
}

func TestBuildUnregisteredQueryWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w, err := world.Build[uint8, ecs.Mask8]("demo", mustScene(t, `
components: [Name]
systems:
  - name: heal
    query: [Health]
    handler: aging
`), world.Deps{Log: zap.New(core)})
	require.NoError(t, err)

	assert.Equal(t, 1, w.Systems())
	assert.Len(t, logs.FilterMessage("system never matches").All(), 1)
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]struct {
		scene string
		err   error
	}{
		"unknown registered kind": {
			scene: "components: [Mana]",
			err:   component.ErrUnknownKind,
		},
		"unknown entity kind": {
			scene: "entities: [{components: [{type: Mana}]}]",
			err:   component.ErrUnknownKind,
		},
		"unknown query kind": {
			scene: "systems: [{name: a, query: [Mana], handler: greeter}]",
			err:   component.ErrUnknownKind,
		},
		"no script engine": {
			scene: "systems: [{name: a, query: [Name], handler: script, script: census}]",
			err:   world.ErrScriptUnavailable,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := world.Build[uint8, ecs.Mask8]("demo", mustScene(t, tc.scene), world.Deps{})
			assert.ErrorIs(t, err, tc.err)
		})
	}

	_, err := world.Build[uint8, ecs.Mask8]("demo", mustScene(t,
		"entities: [{components: [{type: Age, value: {years: old}}]}]"), world.Deps{})
	assert.Error(t, err, "bad component value")
}

func TestBuildIDOverflow(t *testing.T) {
	_, err := world.Build[uint8, ecs.Mask8]("demo", mustScene(t, "entities: [{count: 256}]"), world.Deps{})
	assert.ErrorIs(t, err, ecs.ErrIDOverflow)
}

func TestQueryMask(t *testing.T) {
	reg := ecs.NewRegistry()
	catalog := component.NewCatalog()
	require.NoError(t, catalog.Register(reg, "Age", "Name"))

	m, err := world.QueryMask[ecs.Mask8](reg, catalog, "Name", "Age", "Name")
	require.NoError(t, err)
	assert.Equal(t, ecs.Mask8(0b11), m)

	m, err = world.QueryMask[ecs.Mask8](reg, catalog, "Health")
	require.NoError(t, err)
	assert.True(t, m.IsZero())
}

func TestBuildMatchAllCountsOnlyDispatched(t *testing.T) {
	w, err := world.Build[uint8, ecs.Mask8]("demo", mustScene(t, `
components: [Name, Age]
entities:
  - components: [{type: Name, value: {value: ann}}]
  - components: [{type: Age, value: {years: 3}}]
systems:
  - {name: greet, query: [Name, Age], match: all, handler: greeter}
`), world.Deps{})
	require.NoError(t, err)
	assert.Zero(t, w.RunAll(), "no entity holds both kinds")
}

func TestBuildNormalizesCount(t *testing.T) {
	scene := &data.Scene{
		Components: []string{"Name"},
		Entities: []data.EntitySpawn{
			{Components: []data.ComponentEntry{{Type: "Name"}}},
			{Count: 2},
		},
	}
	w, err := world.Build[uint8, ecs.Mask8]("demo", scene, world.Deps{})
	require.NoError(t, err)
	assert.Equal(t, 3, w.Len(), "count 0 spawns one entity")

	scene.Entities = []data.EntitySpawn{{Count: -1}}
	_, err = world.Build[uint8, ecs.Mask8]("demo", scene, world.Deps{})
	assert.ErrorIs(t, err, world.ErrNegativeCount)
}
