package script

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/boxselect/internal/selection/registry"
)

// HookFunction is the global the hook must define.
const HookFunction = "on_change"

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 100 * time.Millisecond

// Hook is a loaded on_change script. gopher-lua states are not goroutine
// safe; mu serializes every use of L.
type Hook struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	print   func(string)
	closed  bool
}

// Option configures a Hook.
type Option func(*Hook)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(h *Hook) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithPrint routes Lua print output to fn.
func WithPrint(fn func(string)) Option {
	return func(h *Hook) {
		h.print = fn
	}
}

func newHook(opts []Option) *Hook {
	h := &Hook{
		timeout: DefaultTimeout,
		print:   func(string) {},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(h.L)
	installSandbox(h.L, h.print)
	return h
}

// Load reads and runs the hook file at path.
func Load(path string, opts ...Option) (*Hook, error) {
	h := newHook(opts)
	if err := h.guarded(context.Background(), func() error { return h.L.DoFile(path) }); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("load hook %s: %w", path, err)
	}
	return h, nil
}

// LoadString runs src as a hook.
func LoadString(src string, opts ...Option) (*Hook, error) {
	h := newHook(opts)
	if err := h.guarded(context.Background(), func() error { return h.L.DoString(src) }); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("load hook: %w", err)
	}
	return h, nil
}

// Defined reports whether the script defines on_change.
func (h *Hook) Defined() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	return h.L.GetGlobal(HookFunction).Type() == lua.LTFunction
}

// OnChange calls on_change(selected, previous). ok is false when the hook
// is not defined or returned something other than a string.
func (h *Hook) OnChange(ctx context.Context, selected, previous []registry.ID) (label string, ok bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return "", false, ErrClosed
	}
	fn := h.L.GetGlobal(HookFunction)
	if fn.Type() != lua.LTFunction {
		return "", false, nil
	}

	top := h.L.GetTop()
	err = h.guarded(ctx, func() error {
		return h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
			idTable(h.L, selected), idTable(h.L, previous))
	})
	if err != nil {
		h.L.SetTop(top)
		return "", false, fmt.Errorf("%s: %w", HookFunction, err)
	}

	ret := h.L.Get(-1)
	h.L.SetTop(top)
	if s, isStr := ret.(lua.LString); isStr {
		return string(s), true, nil
	}
	return "", false, nil
}

// Close releases the Lua state. It is safe to call more than once.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

// guarded runs fn under the call deadline, converting Lua panics into
// errors.
func (h *Hook) guarded(ctx context.Context, fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

func idTable(L *lua.LState, ids []registry.ID) *lua.LTable {
	t := L.CreateTable(len(ids), 0)
	for _, id := range ids {
		t.Append(lua.LString(id))
	}
	return t
}

// openSafeLibraries opens only libraries without filesystem or process
// access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// installSandbox removes loaders and replaces require and print.
func installSandbox(L *lua.LState, print func(string)) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	require := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(require)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		print(strings.Join(parts, "\t"))
		return 0
	}))
}
