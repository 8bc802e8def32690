// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/loopp-client/internal/service"
)

// ErrUserQuit is returned by [TUI.Run] when the user closes the program.
var ErrUserQuit = errors.New("user quit")

// errorText is what a page shows for err. Backend and validation messages
// pass through, anything else is replaced by the generic message.
func errorText(err error) string {
	return service.Message(err)
}
