package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps command names and aliases to their implementations.
// Commands self-register at init time via the package-level Register.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds a command under its name and every alias. A name or
// alias that is already taken is an error.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if _, taken := r.cmds[name]; taken {
			return fmt.Errorf("command already registered: %s", name)
		}
	}
	for _, name := range names {
		r.cmds[name] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns every registered command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]Command)
	for _, cmd := range r.cmds {
		seen[cmd.Name()] = cmd
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]Command, len(names))
	for i, name := range names {
		all[i] = seen[name]
	}
	return all
}

// DefaultRegistry is the registry the CLI dispatches against.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry, panicking on a name
// collision: that is a programming error, not a runtime condition.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
