package scripting

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/fourbecs/becs/internal/core/ecs"
)

var ErrNoSuchFunction = eris.New("lua function not found")

// Engine wraps a gopher-lua VM that can test component membership on the
// entities of one World. Scripts see:
//
//	has(id, "name")  -> bool, errors on undeclared names
//	alive(id)        -> bool
//
// Entity ids cross into Lua as numbers. Single-goroutine access only.
type Engine struct {
	vm    *lua.LState
	world *ecs.World
	log   *zap.Logger
}

func NewEngine(w *ecs.World, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	e := &Engine{vm: vm, world: w, log: log}
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("has", vm.NewFunction(e.luaHas))
	vm.SetGlobal("alive", vm.NewFunction(e.luaAlive))
	return e
}

func (e *Engine) Close() { e.vm.Close() }

// LoadDir runs every .lua file in dir. A missing dir is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "read scripts %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return eris.Wrapf(err, "load %s", path)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return eris.Wrap(err, "run lua chunk")
	}
	return nil
}

// Check calls the global Lua predicate fn with id and returns its truth value.
func (e *Engine) Check(fn string, id ecs.EntityID) (bool, error) {
	f := e.vm.GetGlobal(fn)
	if f == lua.LNil {
		return false, eris.Wrapf(ErrNoSuchFunction, "%s", fn)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(id)); err != nil {
		e.log.Error("lua predicate error", zap.String("fn", fn), zap.Error(err))
		return false, eris.Wrapf(err, "call %s", fn)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(ret), nil
}

func (e *Engine) luaHas(L *lua.LState) int {
	id := ecs.EntityID(L.CheckNumber(1))
	name := L.CheckString(2)
	k, err := e.world.Registry().Lookup(name)
	if err != nil {
		L.ArgError(2, "unknown component "+name)
		return 0
	}
	ent, ok := e.world.Entity(id)
	L.Push(lua.LBool(ok && ecs.HasID(ent, k.ID())))
	return 1
}

func (e *Engine) luaAlive(L *lua.LState) int {
	L.Push(lua.LBool(e.world.Alive(ecs.EntityID(L.CheckNumber(1)))))
	return 1
}
