// Package hooking provides the ordered observer lists used by every
// notification in the item-flow network.
package hooking

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	// Domain is the hookable object that is raising this hook.
	Domain Hookable

	// Pos identifies the occurrence that the hook is firing for.
	Pos *HookPos

	// Item carries the primary subject associated with the hook (an item, a
	// port, a component).
	Item any

	// Detail holds optional auxiliary data; hook sites may leave it nil.
	Detail any
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook. Hooks are invoked in registration order.
	AcceptHook(hook Hook)

	// RemoveHook unregisters a hook. Hooks are matched by identity, so hook
	// implementations must be comparable (usually pointers).
	RemoveHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook

	// InvokeHook triggers the registered Hooks.
	InvokeHook(ctx HookCtx)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// FuncHook adapts a function to the Hook interface. Always use it through a
// pointer so that it can be removed again.
type FuncHook struct {
	f func(ctx HookCtx)
}

// NewFuncHook wraps f as a removable Hook.
func NewFuncHook(f func(ctx HookCtx)) *FuncHook {
	return &FuncHook{f: f}
}

// Func calls the wrapped function.
func (h *FuncHook) Func(ctx HookCtx) {
	h.f(ctx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	hookList []Hook
}

// NewHookableBase creates a HookableBase object.
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.hookList = make([]Hook, 0)

	return h
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

// RemoveHook unregisters the hook. Removing a hook that is not registered is a
// no-op.
//
// A new slice is built so that an InvokeHook that is iterating the old list
// (a hook removing itself, or a strategy re-subscribing) is not disturbed.
func (h *HookableBase) RemoveHook(hook Hook) {
	for i, registered := range h.hookList {
		if registered != hook {
			continue
		}

		newList := make([]Hook, 0, len(h.hookList)-1)
		newList = append(newList, h.hookList[:i]...)
		newList = append(newList, h.hookList[i+1:]...)
		h.hookList = newList

		return
	}
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	for _, h := range h.hookList {
		if h == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook triggers the register Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
