package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine global into L:
//
//	engine.log(msg)
//	engine.notify(msg)
//	engine.dice.roll(expr)        -> total
//	engine.dice.between(lo, hi)   -> n
//	engine.player.get()           -> table or nil
//	engine.player.adjust(stat, n) -> true | false, err
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetField(engine, "notify", L.NewFunction(m.luaNotify))

	diceMod := L.NewTable()
	L.SetField(diceMod, "roll", L.NewFunction(m.luaRoll))
	L.SetField(diceMod, "between", L.NewFunction(m.luaBetween))
	L.SetField(engine, "dice", diceMod)

	player := L.NewTable()
	L.SetField(player, "get", L.NewFunction(m.luaPlayerGet))
	L.SetField(player, "adjust", L.NewFunction(m.luaPlayerAdjust))
	L.SetField(engine, "player", player)

	L.SetGlobal("engine", engine)
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

func (m *Manager) luaNotify(L *lua.LState) int {
	msg := L.CheckString(1)
	if m.Notify != nil {
		m.Notify(msg)
	}
	return 0
}

func (m *Manager) luaRoll(L *lua.LState) int {
	res, err := m.roller.RollExpr(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(res.Total()))
	return 1
}

func (m *Manager) luaBetween(L *lua.LState) int {
	lo, hi := L.CheckInt(1), L.CheckInt(2)
	if lo > hi {
		L.ArgError(2, "hi must be >= lo")
		return 0
	}
	L.Push(lua.LNumber(m.roller.Between("lua", lo, hi)))
	return 1
}

func (m *Manager) luaPlayerGet(L *lua.LState) int {
	if m.GetPlayer == nil {
		L.Push(lua.LNil)
		return 1
	}
	p := m.GetPlayer()
	if p == nil {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	L.SetField(t, "x", lua.LNumber(p.X))
	L.SetField(t, "y", lua.LNumber(p.Y))
	L.SetField(t, "health", lua.LNumber(p.Health))
	L.SetField(t, "max_health", lua.LNumber(p.MaxHealth))
	L.SetField(t, "mana", lua.LNumber(p.Mana))
	L.SetField(t, "max_mana", lua.LNumber(p.MaxMana))
	L.SetField(t, "gold", lua.LNumber(p.Gold))
	L.SetField(t, "level", lua.LNumber(p.Level))
	L.Push(t)
	return 1
}

func (m *Manager) luaPlayerAdjust(L *lua.LState) int {
	stat, delta := L.CheckString(1), L.CheckInt(2)
	if m.AdjustPlayer == nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString("no player"))
		return 2
	}
	if err := m.AdjustPlayer(stat, delta); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
