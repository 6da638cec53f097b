/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
)

// CapabilityFactory builds the blob capability for a provider.
type CapabilityFactory func() (blobstore.Capability, error)

var (
	capabilityRegistry = make(map[string]CapabilityFactory)
	mu                 sync.RWMutex
)

// RegisterCapability registers a factory under a provider name such as "azure".
// Names are case-insensitive. Registering the same name twice panics to prevent accidental overrides.
func RegisterCapability(provider string, fn CapabilityFactory) {
	key := strings.ToLower(provider)

	mu.Lock()
	defer mu.Unlock()
	if _, exists := capabilityRegistry[key]; exists {
		panic(fmt.Sprintf("capability registry: provider %q already registered", provider))
	}
	capabilityRegistry[key] = fn
}

// GetCapabilityFactory returns the registered factory for provider.
func GetCapabilityFactory(provider string) (CapabilityFactory, error) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := capabilityRegistry[strings.ToLower(provider)]
	if !ok {
		return nil, errors.NewNotFoundError("provider", provider)
	}
	return fn, nil
}

// NewCapability builds a capability for provider.
func NewCapability(provider string) (blobstore.Capability, error) {
	fn, err := GetCapabilityFactory(provider)
	if err != nil {
		return nil, err
	}
	capability, err := fn()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s capability: %w", provider, err)
	}
	return capability, nil
}

// Providers lists the registered provider names in sorted order.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(capabilityRegistry))
	for name := range capabilityRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
