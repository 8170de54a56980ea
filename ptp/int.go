package ptp

import (
	"fmt"
	"io"
	"math"
	"math/big"
)

// INT8 is the PTP signed 8-bit integer.
type INT8 int8

const (
	MinINT8 INT8 = math.MinInt8
	MaxINT8 INT8 = math.MaxInt8
)

func INT8FromInt(v int64) (INT8, error) {
	return INT8FromBig(big.NewInt(v))
}

func INT8FromBig(v *big.Int) (INT8, error) {
	if err := boundsINT8.check(v); err != nil {
		return 0, err
	}
	return INT8(v.Int64()), nil
}

func INT8FromBytes(b []byte) (INT8, error) {
	if err := checkLen("INT8", b, SizeINT8); err != nil {
		return 0, err
	}
	return INT8(b[0]), nil
}

func ReadINT8(r io.Reader) (INT8, error) {
	b, err := readFull(r, SizeINT8, "INT8")
	if err != nil {
		return 0, err
	}
	return INT8(b[0]), nil
}

func (v INT8) Bytes() []byte {
	return []byte{byte(v)}
}

func (v INT8) Big() *big.Int {
	return big.NewInt(int64(v))
}

func (v INT8) Compare(o INT8) int {
	return compareSigned(int64(v), int64(o))
}

// String prints the two's complement bytes, so -1 is 0xff.
func (v INT8) String() string {
	return fmt.Sprintf("0x%02x", uint8(v))
}

// INT16 is the PTP signed 16-bit integer.
type INT16 int16

const (
	MinINT16 INT16 = math.MinInt16
	MaxINT16 INT16 = math.MaxInt16
)

func INT16FromInt(v int64) (INT16, error) {
	return INT16FromBig(big.NewInt(v))
}

func INT16FromBig(v *big.Int) (INT16, error) {
	if err := boundsINT16.check(v); err != nil {
		return 0, err
	}
	return INT16(v.Int64()), nil
}

func INT16FromBytes(b []byte) (INT16, error) {
	if err := checkLen("INT16", b, SizeINT16); err != nil {
		return 0, err
	}
	return INT16(byteOrder.Uint16(b)), nil
}

func ReadINT16(r io.Reader) (INT16, error) {
	b, err := readFull(r, SizeINT16, "INT16")
	if err != nil {
		return 0, err
	}
	return INT16(byteOrder.Uint16(b)), nil
}

func (v INT16) Bytes() []byte {
	b := make([]byte, SizeINT16)
	byteOrder.PutUint16(b, uint16(v))
	return b
}

func (v INT16) Big() *big.Int {
	return big.NewInt(int64(v))
}

func (v INT16) Compare(o INT16) int {
	return compareSigned(int64(v), int64(o))
}

func (v INT16) String() string {
	return fmt.Sprintf("0x%04x", uint16(v))
}

// INT32 is the PTP signed 32-bit integer.
type INT32 int32

const (
	MinINT32 INT32 = math.MinInt32
	MaxINT32 INT32 = math.MaxInt32
)

func INT32FromInt(v int64) (INT32, error) {
	return INT32FromBig(big.NewInt(v))
}

func INT32FromBig(v *big.Int) (INT32, error) {
	if err := boundsINT32.check(v); err != nil {
		return 0, err
	}
	return INT32(v.Int64()), nil
}

func INT32FromBytes(b []byte) (INT32, error) {
	if err := checkLen("INT32", b, SizeINT32); err != nil {
		return 0, err
	}
	return INT32(byteOrder.Uint32(b)), nil
}

func ReadINT32(r io.Reader) (INT32, error) {
	b, err := readFull(r, SizeINT32, "INT32")
	if err != nil {
		return 0, err
	}
	return INT32(byteOrder.Uint32(b)), nil
}

func (v INT32) Bytes() []byte {
	b := make([]byte, SizeINT32)
	byteOrder.PutUint32(b, uint32(v))
	return b
}

func (v INT32) Big() *big.Int {
	return big.NewInt(int64(v))
}

func (v INT32) Compare(o INT32) int {
	return compareSigned(int64(v), int64(o))
}

func (v INT32) String() string {
	return fmt.Sprintf("0x%08x", uint32(v))
}

// INT64 is the PTP signed 64-bit integer.
type INT64 int64

const (
	MinINT64 INT64 = math.MinInt64
	MaxINT64 INT64 = math.MaxInt64
)

// INT64FromInt accepts every int64; the error is always nil.
func INT64FromInt(v int64) (INT64, error) {
	return INT64FromBig(big.NewInt(v))
}

func INT64FromBig(v *big.Int) (INT64, error) {
	if err := boundsINT64.check(v); err != nil {
		return 0, err
	}
	return INT64(v.Int64()), nil
}

func INT64FromBytes(b []byte) (INT64, error) {
	if err := checkLen("INT64", b, SizeINT64); err != nil {
		return 0, err
	}
	return INT64(byteOrder.Uint64(b)), nil
}

func ReadINT64(r io.Reader) (INT64, error) {
	b, err := readFull(r, SizeINT64, "INT64")
	if err != nil {
		return 0, err
	}
	return INT64(byteOrder.Uint64(b)), nil
}

func (v INT64) Bytes() []byte {
	b := make([]byte, SizeINT64)
	byteOrder.PutUint64(b, uint64(v))
	return b
}

func (v INT64) Big() *big.Int {
	return big.NewInt(int64(v))
}

func (v INT64) Compare(o INT64) int {
	return compareSigned(int64(v), int64(o))
}

func (v INT64) String() string {
	return fmt.Sprintf("0x%016x", uint64(v))
}
