// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are typically injected by linker flags during CI/CD and shown in
// CLI/TUI version output for diagnostics and release traceability.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo returns build info with "N/A" substituted for empty values.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(version),
		buildDate:    orNA(date),
		buildCommit:  orNA(commit),
	}
}

func (b AppBuildInfo) Version() string { return b.buildVersion }
func (b AppBuildInfo) Date() string    { return b.buildDate }
func (b AppBuildInfo) Commit() string  { return b.buildCommit }

// String renders the three lines printed on startup.
func (b AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		b.buildVersion, b.buildDate, b.buildCommit)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
