/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream

import (
	"context"
	"fmt"

	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

// ResourceLocatorProtocols answers which locators back a stream.
type ResourceLocatorProtocols interface {
	GetAllLocators(ctx context.Context) ([]streammodels.ResourceLocator, error)
}

// SingleResourceLocatorProtocols always reports one fixed locator.
type SingleResourceLocatorProtocols struct {
	locator streammodels.ResourceLocator
}

func NewSingleResourceLocatorProtocols(locator streammodels.ResourceLocator) *SingleResourceLocatorProtocols {
	return &SingleResourceLocatorProtocols{locator: locator}
}

func (p *SingleResourceLocatorProtocols) GetAllLocators(ctx context.Context) ([]streammodels.ResourceLocator, error) {
	return []streammodels.ResourceLocator{p.locator}, nil
}

// StaticResourceLocatorProtocols reports a fixed list, which may be empty or hold several locators.
type StaticResourceLocatorProtocols []streammodels.ResourceLocator

func (p StaticResourceLocatorProtocols) GetAllLocators(ctx context.Context) ([]streammodels.ResourceLocator, error) {
	return append([]streammodels.ResourceLocator(nil), p...), nil
}

// resolveLocator picks the operation's own locator when it has one, otherwise the stream's only locator.
func (s *Stream) resolveLocator(ctx context.Context, op streammodels.Operation) (*streammodels.ConnectionStringBlobContainerLocator, error) {
	if specified := op.SpecifiedLocator(); specified != nil {
		locator, ok := specified.(*streammodels.ConnectionStringBlobContainerLocator)
		if !ok {
			return nil, errors.NewConfigurationError("operation.SpecifiedResourceLocator",
				fmt.Sprintf("must be a ConnectionStringBlobContainerLocator, got %s", specified.LocatorKind()))
		}
		if locator == nil {
			return nil, errors.NewConfigurationError("operation.SpecifiedResourceLocator", "cannot be a nil locator")
		}
		return locator, nil
	}

	all, err := s.locatorProtocols.GetAllLocators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get locators for stream %q: %w", s.name, err)
	}
	if len(all) != 1 {
		return nil, errors.NewConfigurationError("resourceLocatorProtocols",
			fmt.Sprintf("expected exactly one locator, got %d; multiple locators are not supported", len(all)))
	}
	if all[0] == nil {
		return nil, errors.NewConfigurationError("resourceLocatorProtocols", "returned a nil locator")
	}
	locator, ok := all[0].(*streammodels.ConnectionStringBlobContainerLocator)
	if !ok {
		return nil, errors.NewConfigurationError("resourceLocatorProtocols",
			fmt.Sprintf("locator must be a ConnectionStringBlobContainerLocator, got %s", all[0].LocatorKind()))
	}
	if locator == nil {
		return nil, errors.NewConfigurationError("resourceLocatorProtocols", "returned a nil locator")
	}
	return locator, nil
}
