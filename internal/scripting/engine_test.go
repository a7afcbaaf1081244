package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bitworld/bitworld/internal/scripting"
)

const census = `
function census(ctx)
  local total = 0
  for _, e in ipairs(ctx.entities) do
    total = total + e.components
  end
  last_mask = ctx.mask
  return total
end
`

func TestCall(t *testing.T) {
	e, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Load(census))
	assert.True(t, e.Has("census"))
	assert.False(t, e.Has("last_mask"), "globals that are not functions")

	n, err := e.Call("census", "00000011", []scripting.EntityView{
		{ID: 1, Components: 2},
		{ID: 7, Components: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, e.Has("census"))
}

func TestCallErrors(t *testing.T) {
	e, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Call("missing", "0", nil)
	assert.ErrorIs(t, err, scripting.ErrFunctionNotFound)

	require.NoError(t, e.Load(`function boom(ctx) error("no") end`))
	_, err = e.Call("boom", "0", nil)
	assert.Error(t, err)

	require.NoError(t, e.Load(`function quiet(ctx) end`))
	n, err := e.Call("quiet", "0", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewEngineLoadsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "census.lua"), []byte(census), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644))

	e, err := scripting.NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.True(t, e.Has("census"))

	missing, err := scripting.NewEngine(filepath.Join(dir, "nope"), zap.NewNop())
	require.NoError(t, err, "missing dirs are skipped")
	missing.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644))
	_, err = scripting.NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestLuaLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e, err := scripting.NewEngine("", zap.New(core))
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Load(`function hello(ctx) log("api " .. API_VERSION .. " " .. #ctx.entities) end`))
	_, err = e.Call("hello", "0", []scripting.EntityView{{ID: 1}})
	require.NoError(t, err)

	entries := logs.FilterMessage("lua").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "api 1 1", entries[0].ContextMap()["msg"])
}

func TestCallKeepsWideIDs(t *testing.T) {
	e, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Load(`
function last_digit(ctx)
  local id = ctx.entities[1].id
  return tonumber(string.sub(id, -1))
end
function exact(ctx)
  if ctx.entities[1].id == "9007199254740993" then return 1 end
  return 0
end
`))
	views := []scripting.EntityView{{ID: 1<<53 + 1}}

	n, err := e.Call("last_digit", "0", views)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = e.Call("exact", "0", views)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
