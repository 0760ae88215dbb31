// Package sneakerstest provides mocks and helpers for testing handlers and
// controllers without wiring a full application.
package sneakerstest

import (
	"crypto/rand"
	"encoding/binary"

	sneakers "github.com/HPrieto/crypto-sneakers"
)

// NewCondition returns a random condition, unique enough not to collide
// within a test run.
func NewCondition() sneakers.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return sneakers.NewCondition("sigs", "ed25519", data)
}

// SequenceID returns an ID in the 8 byte binary format that the orm
// sequence is using.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
