package ptpip

import (
	"io"
	"math"

	"github.com/hanwen/go-ptpip/ptp"
)

// HeaderSize is the size of the length and type fields that start
// every packet.
const HeaderSize = 8

// Header is the fixed start of a packet. Length counts the header
// itself.
type Header struct {
	Length ptp.UINT32
	Type   PacketType
}

// PayloadLength returns the number of bytes following the header.
func (h Header) PayloadLength() (int64, error) {
	if h.Length < HeaderSize {
		return 0, &SizeError{
			Type:    h.Type,
			Want:    0,
			Got:     int64(h.Length) - HeaderSize,
			AtLeast: true,
		}
	}
	return int64(h.Length) - HeaderSize, nil
}

func (h Header) Bytes() []byte {
	b := make([]byte, 0, HeaderSize)
	b = append(b, h.Length.Bytes()...)
	return append(b, ptp.UINT32(h.Type).Bytes()...)
}

// ReadHeader reads the 8 header bytes.
func ReadHeader(r io.Reader) (Header, error) {
	b, err := readFull(r, HeaderSize, "packet header")
	if err != nil {
		return Header{}, err
	}
	l, _ := ptp.UINT32FromBytes(b[:4])
	t, _ := ptp.UINT32FromBytes(b[4:])
	return Header{Length: l, Type: PacketType(t)}, nil
}

// Limits constrains the memory a single decoded packet may use. A zero
// MaxPayload means the DefaultLimits value.
type Limits struct {
	MaxPayload int64
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayload: 16 * 1024 * 1024,
	}
}

// MaxPayloadSize is the largest payload a header can describe.
const MaxPayloadSize = math.MaxUint32 - HeaderSize

func assertType(got, want PacketType) error {
	if got != want {
		return &TypeError{Want: want, Got: got}
	}
	return nil
}

// assertSize checks an exact payload length.
func assertSize(h Header, want int64) (int64, error) {
	n, err := h.PayloadLength()
	if err != nil {
		return 0, err
	}
	if n != want {
		return 0, &SizeError{Type: h.Type, Want: want, Got: n}
	}
	return n, nil
}

// assertMinSize checks the minimum payload length of a variable-size
// packet, and the allocation limit.
func assertMinSize(h Header, min int64, limits Limits) (int64, error) {
	n, err := h.PayloadLength()
	if err != nil {
		return 0, err
	}
	if n < min {
		return 0, &SizeError{Type: h.Type, Want: min, Got: n, AtLeast: true}
	}
	if limits.MaxPayload <= 0 {
		limits = DefaultLimits()
	}
	if n > limits.MaxPayload {
		return 0, &SizeError{Type: h.Type, Want: limits.MaxPayload, Got: n, Limit: true}
	}
	return n, nil
}
