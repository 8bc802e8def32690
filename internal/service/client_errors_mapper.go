// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/validators"
)

// Message turns err into the text shown to the user. Backend and
// validation messages pass through unchanged; anything else becomes the
// generic message so raw transport details never reach the screen.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ve *validators.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	switch {
	case errors.Is(err, ErrEmptyServiceID), errors.Is(err, ErrNoSelectedService):
		return capitalize(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return adapter.MsgUnexpected
	}

	return adapter.Message(err)
}

// IsUnauthorized reports whether err means the credential was rejected.
func IsUnauthorized(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:] + "."
}
