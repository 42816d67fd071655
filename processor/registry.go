package processor

import (
	"fmt"
	"sync"
)

// Factory creates a fresh, uninitialized processor. Each Host gets its own
// instances so that differently configured hosts never share state.
type Factory func() Processor

// Registration is a named processor factory.
type Registration struct {
	Name string
	New  Factory
}

var (
	registryLock        sync.Mutex
	registeredFactories []Registration
)

// RegisterProcessor registers an annotation processor under the given name.
// It is meant to be called from package init functions and panics if the name
// is already taken.
func RegisterProcessor(name string, f Factory) {
	registryLock.Lock()
	defer registryLock.Unlock()
	for _, r := range registeredFactories {
		if r.Name == name {
			panic(fmt.Sprintf("processor %q registered twice", name))
		}
	}
	registeredFactories = append(registeredFactories, Registration{Name: name, New: f})
}

// AllRegisteredProcessors returns all registrations in registration order.
func AllRegisteredProcessors() []Registration {
	registryLock.Lock()
	defer registryLock.Unlock()
	regs := make([]Registration, len(registeredFactories))
	copy(regs, registeredFactories)
	return regs
}

// LookupProcessor returns the registration with the given name.
func LookupProcessor(name string) (Registration, bool) {
	registryLock.Lock()
	defer registryLock.Unlock()
	for _, r := range registeredFactories {
		if r.Name == name {
			return r, true
		}
	}
	return Registration{}, false
}
