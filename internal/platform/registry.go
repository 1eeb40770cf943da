package platform

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Options are handed to a backend Factory.
type Options struct {
	Logger *slog.Logger

	// ScaleFactor overrides the HiDPI ratio of every monitor when > 0.
	ScaleFactor float64

	// Display selects the native display connection, e.g. ":1" on X11.
	Display string

	// Settings is a backend-specific configuration value.
	Settings any
}

// Factory opens a backend instance.
type Factory func(Options) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a backend available by name. It panics if name is already
// taken, like database/sql drivers.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if f == nil {
		panic("platform: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("platform: Register called twice for backend " + name)
	}
	registry[name] = f
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBackend is the backend selected for this build target.
func DefaultBackend() string {
	return defaultBackendName
}

// Open creates a backend instance. An empty name selects DefaultBackend.
func Open(name string, opts Options) (Backend, error) {
	if name == "" {
		name = DefaultBackend()
	}
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, NewCreationError(name, "open backend",
			fmt.Errorf("%w %q (registered: %v)", ErrUnknownBackend, name, Backends()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	b, err := f(opts)
	if err != nil {
		return nil, NewCreationError(name, "open backend", err)
	}
	return b, nil
}
