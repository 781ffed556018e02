package commands

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"taskboard/internal/gate"
)

// Registry holds registered commands by name and alias, and which
// command renders each view when the gate redirects there.
type Registry struct {
	mu      sync.RWMutex
	cmds    map[string]Command // name and aliases map to command
	screens map[gate.View]string
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds:    make(map[string]Command),
		screens: make(map[gate.View]string),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if _, exists := r.cmds[n]; exists {
			return fmt.Errorf("command already registered: %s", n)
		}
	}
	for _, n := range names {
		r.cmds[n] = c
	}
	return nil
}

// SetScreen makes the named command the one rendered for view.
func (r *Registry) SetScreen(view gate.View, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens[view] = name
}

// Screen returns the command rendered for view.
func (r *Registry) Screen(view gate.View) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.screens[view]
	if !ok {
		return nil, false
	}
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns all unique commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := make(map[string]Command)
	for _, cmd := range r.cmds {
		byName[cmd.Name()] = cmd
	}

	result := make([]Command, 0, len(byName))
	for _, name := range slices.Sorted(maps.Keys(byName)) {
		result = append(result, byName[name])
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
