package ptp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"
)

var byteOrder = binary.LittleEndian

// Sizes in bytes of the fixed-width types on the wire.
const (
	SizeUINT8  = 1
	SizeUINT16 = 2
	SizeUINT32 = 4
	SizeUINT64 = 8
	SizeINT8   = 1
	SizeINT16  = 2
	SizeINT32  = 4
	SizeINT64  = 8
)

// bounds is the closed interval of magnitudes a type can hold.
type bounds struct {
	name     string
	min, max *big.Int
}

func unsignedBounds(name string, bits uint) bounds {
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	max.Sub(max, big.NewInt(1))
	return bounds{name, big.NewInt(0), max}
}

func signedBounds(name string, bits uint) bounds {
	max := new(big.Int).Lsh(big.NewInt(1), bits-1)
	min := new(big.Int).Neg(max)
	max.Sub(max, big.NewInt(1))
	return bounds{name, min, max}
}

var (
	boundsUINT8  = unsignedBounds("UINT8", 8)
	boundsUINT16 = unsignedBounds("UINT16", 16)
	boundsUINT32 = unsignedBounds("UINT32", 32)
	boundsUINT64 = unsignedBounds("UINT64", 64)
	boundsINT8   = signedBounds("INT8", 8)
	boundsINT16  = signedBounds("INT16", 16)
	boundsINT32  = signedBounds("INT32", 32)
	boundsINT64  = signedBounds("INT64", 64)
)

func (b bounds) check(v *big.Int) error {
	if v == nil {
		return &FormatError{What: b.name, Reason: "nil magnitude"}
	}
	if v.Cmp(b.min) < 0 || v.Cmp(b.max) > 0 {
		return &RangeError{
			Type:  b.name,
			Value: new(big.Int).Set(v),
			Min:   new(big.Int).Set(b.min),
			Max:   new(big.Int).Set(b.max),
		}
	}
	return nil
}

func checkLen(what string, b []byte, want int) error {
	if len(b) != want {
		return &FormatError{
			What:   what,
			Reason: fmt.Sprintf("got %d bytes, want %d", len(b), want),
		}
	}
	return nil
}

func compareUnsigned(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareSigned(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// UINT8 is the PTP unsigned 8-bit integer.
type UINT8 uint8

const (
	MinUINT8 UINT8 = 0
	MaxUINT8 UINT8 = math.MaxUint8
)

// UINT8FromInt returns v as UINT8, or a *RangeError.
func UINT8FromInt(v int64) (UINT8, error) {
	return UINT8FromBig(big.NewInt(v))
}

func UINT8FromBig(v *big.Int) (UINT8, error) {
	if err := boundsUINT8.check(v); err != nil {
		return 0, err
	}
	return UINT8(v.Uint64()), nil
}

// UINT8FromBytes decodes exactly SizeUINT8 bytes.
func UINT8FromBytes(b []byte) (UINT8, error) {
	if err := checkLen("UINT8", b, SizeUINT8); err != nil {
		return 0, err
	}
	return UINT8(b[0]), nil
}

func ReadUINT8(r io.Reader) (UINT8, error) {
	b, err := readFull(r, SizeUINT8, "UINT8")
	if err != nil {
		return 0, err
	}
	return UINT8(b[0]), nil
}

func (v UINT8) Bytes() []byte {
	return []byte{byte(v)}
}

func (v UINT8) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

// Compare returns -1, 0 or +1 depending on whether v is smaller,
// equal or larger than o.
func (v UINT8) Compare(o UINT8) int {
	return compareUnsigned(uint64(v), uint64(o))
}

func (v UINT8) String() string {
	return fmt.Sprintf("0x%02x", uint8(v))
}

// UINT16 is the PTP unsigned 16-bit integer.
type UINT16 uint16

const (
	MinUINT16 UINT16 = 0
	MaxUINT16 UINT16 = math.MaxUint16
)

func UINT16FromInt(v int64) (UINT16, error) {
	return UINT16FromBig(big.NewInt(v))
}

func UINT16FromBig(v *big.Int) (UINT16, error) {
	if err := boundsUINT16.check(v); err != nil {
		return 0, err
	}
	return UINT16(v.Uint64()), nil
}

func UINT16FromBytes(b []byte) (UINT16, error) {
	if err := checkLen("UINT16", b, SizeUINT16); err != nil {
		return 0, err
	}
	return UINT16(byteOrder.Uint16(b)), nil
}

func ReadUINT16(r io.Reader) (UINT16, error) {
	b, err := readFull(r, SizeUINT16, "UINT16")
	if err != nil {
		return 0, err
	}
	return UINT16(byteOrder.Uint16(b)), nil
}

func (v UINT16) Bytes() []byte {
	b := make([]byte, SizeUINT16)
	byteOrder.PutUint16(b, uint16(v))
	return b
}

func (v UINT16) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

func (v UINT16) Compare(o UINT16) int {
	return compareUnsigned(uint64(v), uint64(o))
}

func (v UINT16) String() string {
	return fmt.Sprintf("0x%04x", uint16(v))
}

// UINT32 is the PTP unsigned 32-bit integer.
type UINT32 uint32

const (
	MinUINT32 UINT32 = 0
	MaxUINT32 UINT32 = math.MaxUint32
)

func UINT32FromInt(v int64) (UINT32, error) {
	return UINT32FromBig(big.NewInt(v))
}

func UINT32FromBig(v *big.Int) (UINT32, error) {
	if err := boundsUINT32.check(v); err != nil {
		return 0, err
	}
	return UINT32(v.Uint64()), nil
}

func UINT32FromBytes(b []byte) (UINT32, error) {
	if err := checkLen("UINT32", b, SizeUINT32); err != nil {
		return 0, err
	}
	return UINT32(byteOrder.Uint32(b)), nil
}

func ReadUINT32(r io.Reader) (UINT32, error) {
	b, err := readFull(r, SizeUINT32, "UINT32")
	if err != nil {
		return 0, err
	}
	return UINT32(byteOrder.Uint32(b)), nil
}

func (v UINT32) Bytes() []byte {
	b := make([]byte, SizeUINT32)
	byteOrder.PutUint32(b, uint32(v))
	return b
}

func (v UINT32) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

func (v UINT32) Compare(o UINT32) int {
	return compareUnsigned(uint64(v), uint64(o))
}

func (v UINT32) String() string {
	return fmt.Sprintf("0x%08x", uint32(v))
}

// UINT64 is the PTP unsigned 64-bit integer. Its full range does not
// fit an int64, so dynamic construction from larger magnitudes goes
// through UINT64FromBig.
type UINT64 uint64

const (
	MinUINT64 UINT64 = 0
	MaxUINT64 UINT64 = math.MaxUint64
)

func UINT64FromInt(v int64) (UINT64, error) {
	return UINT64FromBig(big.NewInt(v))
}

func UINT64FromBig(v *big.Int) (UINT64, error) {
	if err := boundsUINT64.check(v); err != nil {
		return 0, err
	}
	return UINT64(v.Uint64()), nil
}

func UINT64FromBytes(b []byte) (UINT64, error) {
	if err := checkLen("UINT64", b, SizeUINT64); err != nil {
		return 0, err
	}
	return UINT64(byteOrder.Uint64(b)), nil
}

func ReadUINT64(r io.Reader) (UINT64, error) {
	b, err := readFull(r, SizeUINT64, "UINT64")
	if err != nil {
		return 0, err
	}
	return UINT64(byteOrder.Uint64(b)), nil
}

func (v UINT64) Bytes() []byte {
	b := make([]byte, SizeUINT64)
	byteOrder.PutUint64(b, uint64(v))
	return b
}

func (v UINT64) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

func (v UINT64) Compare(o UINT64) int {
	return compareUnsigned(uint64(v), uint64(o))
}

func (v UINT64) String() string {
	return fmt.Sprintf("0x%016x", uint64(v))
}
