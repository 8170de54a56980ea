package ptpip

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GUID identifies an initiator or responder across connections.
type GUID [16]byte

// NewGUID returns a random GUID.
func NewGUID() (GUID, error) {
	var g GUID
	if _, err := rand.Read(g[:]); err != nil {
		return g, err
	}
	return g, nil
}

func (g GUID) String() string {
	s := hex.EncodeToString(g[:])
	return s[:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:]
}

// ParseGUID accepts 32 hex digits, optionally separated by dashes.
func ParseGUID(s string) (GUID, error) {
	var g GUID
	b, err := hex.DecodeString(strings.Replace(s, "-", "", -1))
	if err != nil {
		return g, err
	}
	if len(b) != len(g) {
		return g, fmt.Errorf("ptpip: GUID %q has %d bytes, want %d", s, len(b), len(g))
	}
	copy(g[:], b)
	return g, nil
}

// MarshalText and UnmarshalText let a GUID appear in config files.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GUID) UnmarshalText(b []byte) error {
	p, err := ParseGUID(string(b))
	if err != nil {
		return err
	}
	*g = p
	return nil
}
