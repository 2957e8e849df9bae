package display

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/retroenv/retrogolib/log"
)

// Auto selects the registered backend with the lowest priority value.
const Auto = "auto"

// Settings configure a backend instance.
type Settings struct {
	Title   string
	Scale   int
	WebAddr string
	Logger  *log.Logger
}

// Factory creates a backend.
type Factory func(settings Settings) (Backend, error)

type registration struct {
	name     string
	priority int
	factory  Factory
}

var (
	registryMu sync.Mutex
	registry   = map[string]registration{}
)

// Register makes a backend available by name. Backends register themselves
// from an init function of their package.
func Register(name string, priority int, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name = strings.ToLower(name)
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("display backend %s registered twice", name))
	}
	registry[name] = registration{name: name, priority: priority, factory: factory}
}

// Names returns the names of all registered backends ordered by priority.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	regs := make([]registration, 0, len(registry))
	for _, reg := range registry {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		if regs[i].priority != regs[j].priority {
			return regs[i].priority < regs[j].priority
		}
		return regs[i].name < regs[j].name
	})

	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.name
	}
	return names
}

// New creates the backend with the given name, Auto picks the preferred one.
func New(name string, settings Settings) (Backend, string, error) {
	name = strings.ToLower(name)
	if name == "" || name == Auto {
		names := Names()
		if len(names) == 0 {
			return nil, "", fmt.Errorf("no display backend available")
		}
		name = names[0]
	}

	registryMu.Lock()
	reg, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, "", fmt.Errorf("unsupported display backend '%s', available: %s",
			name, strings.Join(Names(), ", "))
	}

	backend, err := reg.factory(settings)
	if err != nil {
		return nil, "", fmt.Errorf("creating %s display backend: %w", name, err)
	}
	return backend, name, nil
}
