package ptp

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/pkg/errors"
)

func TestRangeBoundaries(t *testing.T) {
	type tc struct {
		name     string
		from     func(int64) error
		min, max int64
	}
	cases := []tc{
		{"UINT8", func(v int64) error { _, err := UINT8FromInt(v); return err }, 0, 255},
		{"UINT16", func(v int64) error { _, err := UINT16FromInt(v); return err }, 0, 65535},
		{"UINT32", func(v int64) error { _, err := UINT32FromInt(v); return err }, 0, 1<<32 - 1},
		{"INT8", func(v int64) error { _, err := INT8FromInt(v); return err }, -128, 127},
		{"INT16", func(v int64) error { _, err := INT16FromInt(v); return err }, -32768, 32767},
		{"INT32", func(v int64) error { _, err := INT32FromInt(v); return err }, -1 << 31, 1<<31 - 1},
	}
	for _, c := range cases {
		if err := c.from(c.min); err != nil {
			t.Errorf("%s(%d): %v", c.name, c.min, err)
		}
		if err := c.from(c.max); err != nil {
			t.Errorf("%s(%d): %v", c.name, c.max, err)
		}
		for _, v := range []int64{c.min - 1, c.max + 1} {
			err := c.from(v)
			var re *RangeError
			if !errors.As(err, &re) {
				t.Errorf("%s(%d): got %v, want RangeError", c.name, v, err)
				continue
			}
			if re.Type != c.name || re.Value.Int64() != v {
				t.Errorf("%s(%d): got %v", c.name, v, re)
			}
		}
	}
}

func TestUINT64Range(t *testing.T) {
	max := new(big.Int).SetUint64(1<<64 - 1)
	v, err := UINT64FromBig(max)
	if err != nil || v != MaxUINT64 {
		t.Fatalf("got %v, %v", v, err)
	}
	if v.String() != "0xffffffffffffffff" {
		t.Errorf("String: %s", v)
	}
	if v.Big().Cmp(max) != 0 {
		t.Errorf("Big: %v", v.Big())
	}

	over := new(big.Int).Add(max, big.NewInt(1))
	var re *RangeError
	if _, err := UINT64FromBig(over); !errors.As(err, &re) {
		t.Errorf("got %v, want RangeError", err)
	}
	if _, err := UINT64FromInt(-1); !errors.As(err, &re) {
		t.Errorf("got %v, want RangeError", err)
	}

	minI := new(big.Int).Lsh(big.NewInt(1), 63)
	minI.Neg(minI)
	i, err := INT64FromBig(minI)
	if err != nil || i != MinINT64 {
		t.Errorf("got %v, %v", i, err)
	}
	for _, w := range []int64{math.MinInt64, -1, math.MaxInt64} {
		if i, err := INT64FromInt(w); err != nil || int64(i) != w {
			t.Errorf("INT64FromInt(%d): got %v, %v", w, i, err)
		}
	}
	if _, err := INT64FromBig(new(big.Int).Sub(minI, big.NewInt(1))); !errors.As(err, &re) {
		t.Errorf("got %v, want RangeError", err)
	}

	var fe *FormatError
	if _, err := UINT32FromBig(nil); !errors.As(err, &fe) {
		t.Errorf("nil: got %v, want FormatError", err)
	}
}

func TestIntBytes(t *testing.T) {
	if b := UINT16(0x1234).Bytes(); !bytes.Equal(b, []byte{0x34, 0x12}) {
		t.Errorf("UINT16: %x", b)
	}
	if b := UINT32(0x10001).Bytes(); !bytes.Equal(b, []byte{1, 0, 1, 0}) {
		t.Errorf("UINT32: %x", b)
	}
	if b := INT16(-2).Bytes(); !bytes.Equal(b, []byte{0xfe, 0xff}) {
		t.Errorf("INT16: %x", b)
	}
	if b := UINT64(0x100).Bytes(); !bytes.Equal(b, []byte{0, 1, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("UINT64: %x", b)
	}

	v, err := INT32FromBytes([]byte{0xff, 0xff, 0xff, 0xff})
	if err != nil || v != -1 {
		t.Errorf("INT32FromBytes: %v, %v", v, err)
	}
	u, err := UINT32FromBytes([]byte{0xff, 0xff, 0xff, 0xff})
	if err != nil || u != MaxUINT32 {
		t.Errorf("UINT32FromBytes: %v, %v", u, err)
	}

	var fe *FormatError
	if _, err := UINT32FromBytes([]byte{1, 2, 3}); !errors.As(err, &fe) {
		t.Errorf("short: got %v, want FormatError", err)
	}
	if _, err := UINT16FromBytes([]byte{1, 2, 3}); !errors.As(err, &fe) {
		t.Errorf("long: got %v, want FormatError", err)
	}
}

func TestReadShort(t *testing.T) {
	if _, err := ReadUINT32(bytes.NewBuffer([]byte{1, 2, 3})); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("got %v, want ErrEndOfInput", err)
	}
	if _, err := ReadUINT8(&bytes.Buffer{}); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("got %v, want ErrEndOfInput", err)
	}
	var fe *FormatError
	if _, err := ReadUINT64(bytes.NewBuffer([]byte{1})); errors.As(err, &fe) {
		t.Errorf("short read reported as FormatError: %v", err)
	}

	r := bytes.NewBuffer([]byte{0x01, 0x20, 0xff})
	v, err := ReadUINT16(r)
	if err != nil || v != RC_OK {
		t.Errorf("ReadUINT16: %v, %v", v, err)
	}
	if r.Len() != 1 {
		t.Errorf("consumed %d bytes", 3-r.Len())
	}
	i, err := ReadINT8(r)
	if err != nil || i != -1 {
		t.Errorf("ReadINT8: %v, %v", i, err)
	}
}

func TestCompare(t *testing.T) {
	if UINT32(1).Compare(2) != -1 || UINT32(2).Compare(1) != 1 || UINT32(7).Compare(7) != 0 {
		t.Error("UINT32 compare")
	}
	if MaxUINT64.Compare(0) != 1 {
		t.Error("UINT64 compare")
	}
	if INT8(-1).Compare(1) != -1 || MinINT64.Compare(MaxINT64) != -1 {
		t.Error("signed compare")
	}
}

func TestString(t *testing.T) {
	for got, want := range map[string]string{
		UINT8(0xa).String():    "0x0a",
		UINT16(0x2001).String(): "0x2001",
		UINT32(1).String():      "0x00000001",
		INT8(-1).String():       "0xff",
		INT16(-2).String():      "0xfffe",
		INT32(-1).String():      "0xffffffff",
		INT64(1).String():       "0x0000000000000001",
	} {
		if got != want {
			t.Errorf("got %s want %s", got, want)
		}
	}
}
