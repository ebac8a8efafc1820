package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Dialect registry
var (
	frontendsMu sync.RWMutex
	frontends   = make(map[string]Frontend)
)

// ErrUnknownDialect is returned by Lookup for names nothing registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Get returns a dialect front-end by name (case-insensitive).
func Get(name string) (Frontend, bool) {
	frontendsMu.RLock()
	defer frontendsMu.RUnlock()
	f, ok := frontends[strings.ToLower(name)]
	return f, ok
}

// Lookup is Get with an error naming the available dialects.
func Lookup(name string) (Frontend, error) {
	if f, ok := Get(name); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownDialect, name, strings.Join(List(), ", "))
}

// Register registers a front-end in the global registry, replacing any
// previous registration under the same name.
// Called by dialect implementations in their init() functions.
func Register(f Frontend) {
	frontendsMu.Lock()
	defer frontendsMu.Unlock()
	frontends[strings.ToLower(f.Name())] = f
}

// List returns all registered dialect names (sorted).
func List() []string {
	frontendsMu.RLock()
	defer frontendsMu.RUnlock()
	names := make([]string, 0, len(frontends))
	for name := range frontends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered front-ends sorted by name.
func All() []Frontend {
	names := List()
	out := make([]Frontend, 0, len(names))
	for _, name := range names {
		if f, ok := Get(name); ok {
			out = append(out, f)
		}
	}
	return out
}
