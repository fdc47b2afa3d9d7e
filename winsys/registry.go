// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package winsys

import (
	"sync"
)

// Factory creates a new window-system connection. A factory returns nil
// when its window system is unavailable at runtime.
type Factory func() WinSys

// Well-known implementation names.
const (
	// NameHal is the GPU-backed implementation.
	NameHal = "hal"

	// NameImage is the CPU implementation backed by Go images.
	NameImage = "image"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for selection (first available wins).
	priority = []string{NameHal, NameImage}
)

// Register registers a factory with the given name. This is typically called
// from init() functions in implementation packages. An existing factory with
// the same name is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a factory from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered implementation names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// Get returns a new connection by name, or nil if the name is not registered
// or the window system is unavailable.
func Get(name string) WinSys {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := factories[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available window system: GPU-backed when present,
// the image fallback otherwise. Returns nil if nothing is registered.
func Default() WinSys {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := factories[name]; ok {
			if ws := factory(); ws != nil {
				return ws
			}
		}
	}
	for _, factory := range factories {
		if ws := factory(); ws != nil {
			return ws
		}
	}
	return nil
}
