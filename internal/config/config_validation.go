// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants every consumer relies on.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Listing.PageSize < 0 {
		return fmt.Errorf("%w: page size %d", ErrInvalidListingConfigs, cfg.Listing.PageSize)
	}
	if cfg.Cache.TTL < 0 || cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAdapterConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.Adapter.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidAdapterConfigs, cfg.Adapter.BaseURL)
	}

	if !strings.HasPrefix(cfg.Adapter.SearchPath, "/") {
		return fmt.Errorf("%w: search path %q", ErrInvalidAdapterConfigs, cfg.Adapter.SearchPath)
	}

	if cfg.App.CredentialTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Listing.PageSize <= 0 {
		return ErrInvalidListingConfigs
	}

	return nil
}
