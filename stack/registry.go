package stack

import (
	"maps"
	"slices"
	"sync"

	"github.com/hupe1980/neighborhood/manager"
)

// Factory stacks an adaptor on lower.
type Factory func(lower manager.Manager, hypers manager.Hypers, optFns ...manager.Option) (manager.Adaptor, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes an adaptor available under name. Registering a name
// twice replaces the previous factory.
func Register(name string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = f
}

// Names returns the registered adaptor names, sorted.
func Names() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

func lookup(name string) (Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// adapt turns a typed constructor into a Factory.
func adapt[T manager.Adaptor](fn func(manager.Manager, manager.Hypers, ...manager.Option) (T, error)) Factory {
	return func(lower manager.Manager, hypers manager.Hypers, optFns ...manager.Option) (manager.Adaptor, error) {
		a, err := fn(lower, hypers, optFns...)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}

func init() {
	Register(manager.NameNeighbourList, adapt(manager.NewNeighbourList))
	Register(manager.NameStrict, adapt(manager.NewStrict))
	Register(manager.NameCenterContribution, adapt(manager.NewCenterContribution))
	Register(manager.NameKspace, adapt(manager.NewKspace))
	Register(manager.NameMaxOrder, adapt(manager.NewMaxOrder))
}
