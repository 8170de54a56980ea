package ptpip

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/hanwen/go-ptpip/ptp"
)

// TypeError is returned when a packet of one type was read where
// another was required.
type TypeError struct {
	Want PacketType
	Got  PacketType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("ptpip: got packet %v (%d), want %v (%d)",
		e.Got, uint32(e.Got), e.Want, uint32(e.Want))
}

// SizeError reports a payload length that does not match its type.
// AtLeast is set for variants with a variable-size tail; Limit is set
// when the payload exceeds the configured maximum.
type SizeError struct {
	Type    PacketType
	Want    int64
	Got     int64
	AtLeast bool
	Limit   bool
}

func (e *SizeError) Error() string {
	switch {
	case e.Limit:
		return fmt.Sprintf("ptpip: %v payload of %d bytes exceeds limit %d", e.Type, e.Got, e.Want)
	case e.AtLeast:
		return fmt.Sprintf("ptpip: %v payload is %d bytes, want at least %d", e.Type, e.Got, e.Want)
	}
	return fmt.Sprintf("ptpip: %v payload is %d bytes, want %d", e.Type, e.Got, e.Want)
}

// UnknownTypeError carries a packet whose type tag is not defined.
type UnknownTypeError struct {
	Type    PacketType
	Payload []byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("ptpip: unknown packet type 0x%x (%d payload bytes)", uint32(e.Type), len(e.Payload))
}

// InitFailError is returned when the responder refuses a connection.
type InitFailError struct {
	Reason ptp.UINT32
}

func (e *InitFailError) Error() string {
	return fmt.Sprintf("ptpip: connection refused, reason %v", e.Reason)
}

// SyncError is an error type that indicates lost transaction
// synchronization in the protocol.
type SyncError string

func (s SyncError) Error() string {
	return string(s)
}

// CancelledError is returned when the peer cancels an active data
// transfer. It is not a protocol violation.
type CancelledError struct {
	TransactionID ptp.UINT32
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("ptpip: transaction %v cancelled", e.TransactionID)
}

func readFull(r io.Reader, n int64, what string) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrapf(ptp.ErrEndOfInput, "reading %s", what)
		}
		return nil, errors.Wrapf(err, "reading %s", what)
	}
	return buf, nil
}
