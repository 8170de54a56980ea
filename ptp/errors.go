package ptp

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// ErrEndOfInput is returned, wrapped with the name of the field being
// read, when a stream ends before a value was complete. Use
// errors.Is to test for it.
var ErrEndOfInput = errors.New("ptp: end of input")

// RangeError reports a magnitude that does not fit a fixed-width
// type.
type RangeError struct {
	Type  string
	Value *big.Int
	Min   *big.Int
	Max   *big.Int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("ptp: %s value %s out of range [%s, %s]", e.Type, e.Value, e.Min, e.Max)
}

// FormatError reports bytes that can never decode to a valid value,
// eg. a buffer of the wrong length, or a string without terminator.
type FormatError struct {
	What   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ptp: malformed %s: %s", e.What, e.Reason)
}

// EnumError is returned when a field restricted to a closed set of
// values decodes to something outside that set.
type EnumError struct {
	Field string
	Value uint64
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("ptp: invalid value 0x%x for field %s", e.Value, e.Field)
}

// RCError are return codes from the Container.Code field.
type RCError uint16

func (e RCError) Error() string {
	n, ok := RC_names[int(e)]
	if ok {
		return n
	}
	return fmt.Sprintf("RetCode %x", uint16(e))
}

// endOfInput maps short reads onto ErrEndOfInput so callers can tell
// "wait for more bytes" apart from malformed data.
func endOfInput(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrEndOfInput, "reading %s", what)
	}
	return errors.Wrapf(err, "reading %s", what)
}

func readFull(r io.Reader, n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, endOfInput(err, what)
	}
	return buf, nil
}
