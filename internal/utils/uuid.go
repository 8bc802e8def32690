package utils

import "github.com/google/uuid"

// IDGenerator issues identifiers for locally created records such as
// optimistic chat messages.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator produces time-ordered UUIDv7 strings.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate falls back to a random UUIDv4 if a v7 value cannot be produced.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
