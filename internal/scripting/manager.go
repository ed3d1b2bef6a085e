package scripting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// ErrClosed is returned by CallHook after Close.
var ErrClosed = errors.New("scripting: manager closed")

// PlayerInfo is a snapshot of the player passed to Lua callbacks.
type PlayerInfo struct {
	X, Y      int
	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
	Gold      int
	Level     int
}

// Manager owns one sandboxed LState holding every loaded event script and
// exposes hook dispatch.
//
// Manager is safe for concurrent use; calls into the VM are serialised.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel context.CancelFunc
	limit  int
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	GetPlayer    func() *PlayerInfo
	AdjustPlayer func(stat string, delta int) error
	Notify       func(msg string)
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager whose VM has the engine module registered.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	m := &Manager{roller: roller, logger: logger}
	m.L, m.cancel = NewSandboxedState(0)
	m.RegisterModules(m.L)
	return m
}

// SetInstructionLimit sets the per-call opcode budget. 0 restores the default.
func (m *Manager) SetInstructionLimit(instLimit int) {
	m.mu.Lock()
	m.limit = instLimit
	m.mu.Unlock()
}

// LoadDir executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Returns an error on the first file that fails to load.
func (m *Manager) LoadDir(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)
	for _, path := range luaFiles {
		if err := m.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile executes one Lua file in the VM.
//
// Postcondition: Globals defined by the file are callable via CallHook.
func (m *Manager) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return fmt.Errorf("scripting: manager closed")
	}
	m.cancel = resetLimit(m.L, m.limit)
	if err := m.L.DoFile(path); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", path, err)
	}
	return nil
}

// LoadString executes a Lua chunk in the VM. name labels errors.
func (m *Manager) LoadString(name, src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return fmt.Errorf("scripting: manager closed")
	}
	m.cancel = resetLimit(m.L, m.limit)
	if err := m.L.DoString(src); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return false
	}
	return m.L.GetGlobal(hook).Type() == lua.LTFunction
}

// CallHook calls the named Lua global function with a fresh instruction
// budget. Returns (LNil, nil) if the hook is not defined and ErrClosed after
// Close. Lua runtime errors, including budget exhaustion, are logged at Warn
// level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.L == nil {
		return lua.LNil, ErrClosed
	}
	fn := m.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	m.cancel = resetLimit(m.L, m.limit)
	if err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret, nil
}

// Close releases the VM. Subsequent CallHook calls return ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.L.Close()
	m.L = nil
}
