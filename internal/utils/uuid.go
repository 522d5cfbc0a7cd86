package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers for new rows.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random v4 if the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsUUID reports whether s parses as a UUID of any version.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
