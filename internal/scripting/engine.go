package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var ErrFunctionNotFound = errors.New("lua function not found")

// Engine wraps a single gopher-lua VM running scripted systems.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// An empty scriptsDir yields an engine with no scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))

	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// luaLog backs the script-visible log(msg).
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// Load runs a chunk of Lua source, typically function definitions.
func (e *Engine) Load(src string) error {
	return e.vm.DoString(src)
}

// Has reports whether a global Lua function called name exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// EntityView is the part of a matched entity a script can see. Scripts get
// the id as a decimal string since Lua numbers are float64.
type EntityView struct {
	ID         uint64
	Components int
}

// Call invokes the Lua function name with a table
//
//	{ mask = "...", entities = { {id = "1", components = 2}, ... } }
//
// and returns its numeric result (0 when it returns nothing).
func (e *Engine) Call(name, mask string, entities []EntityView) (int, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	t := e.vm.NewTable()
	t.RawSetString("mask", lua.LString(mask))

	list := e.vm.NewTable()
	for i, ent := range entities {
		row := e.vm.NewTable()
		row.RawSetString("id", lua.LString(strconv.FormatUint(ent.ID, 10)))
		row.RawSetString("components", lua.LNumber(ent.Components))
		list.RawSetInt(i+1, row)
	}
	t.RawSetString("entities", list)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return 0, fmt.Errorf("call %s: %w", name, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result)), nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
