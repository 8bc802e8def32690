package models

import "time"

// Credential is the bearer token proving an authenticated session together
// with its client-side lifetime. Exactly one credential is active per client.
type Credential struct {
	// Token is the opaque bearer token issued by the backend on sign-up or
	// sign-in. It is sent as "Authorization: Bearer <Token>".
	Token string `json:"token"`

	// IssuedAt is when the client received the token.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is when the client stops using the token, regardless of
	// what the backend would accept.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsZero reports whether no token is set.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// Expired reports whether the credential is unusable at now.
// A zero ExpiresAt never expires.
func (c Credential) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}

// String hides the token so credentials can be logged safely.
func (c Credential) String() string {
	if c.IsZero() {
		return "<none>"
	}
	return "<redacted>"
}
