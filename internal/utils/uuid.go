package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-sortable identifiers for records and queue
// items. UUIDv7 encodes the creation timestamp in its prefix, so insertion
// order can be recovered from the IDs alone when the queue is inspected out
// of band.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
