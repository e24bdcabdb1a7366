// Package dealid generates identifiers for dealt rounds.
//
// An identifier is a UUIDv7 written as 26 characters of Crockford base32, so
// identifiers sort by creation time.
package dealid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded identifier.
const Length = 26

// RandSource is the randomness a Generator draws on. A nil source means crypto/rand.
type RandSource interface {
	IntN(n int) int
}

// Generator creates round identifiers.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator that stamps identifiers with clock.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: rand}
}

// Generate returns a new encoded identifier.
func (g *Generator) Generate() string {
	return Encode(g.UUID())
}

// UUID returns a new version 7 UUID.
func (g *Generator) UUID() uuid.UUID {
	var id uuid.UUID

	// 48-bit big-endian millisecond timestamp
	now := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// Encode writes id as base32. The 128 bits are left-padded with two zero
// bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for b := 0; b < 5; b++ {
			v = v<<1 | bitAt(id, i*5+b-2)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Parse decodes an identifier and checks that it holds a version 7 UUID.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != Length {
		return id, fmt.Errorf("deal ID must be exactly %d characters, got %d", Length, len(s))
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		for b := 0; b < 5; b++ {
			bit := byte(v>>(4-b)) & 1
			pos := i*5 + b - 2
			if pos < 0 {
				if bit != 0 {
					return id, fmt.Errorf("deal ID first character must be 0-7, got %c", s[0])
				}
				continue
			}
			id[pos/8] |= bit << (7 - pos%8)
		}
	}
	if id.Version() != 7 || id.Variant() != uuid.RFC4122 {
		return id, fmt.Errorf("deal ID %s is not a version 7 UUID", s)
	}
	return id, nil
}

// Validate checks if a deal ID is well formed.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

func bitAt(id uuid.UUID, pos int) byte {
	if pos < 0 {
		return 0
	}
	return (id[pos/8] >> (7 - pos%8)) & 1
}
