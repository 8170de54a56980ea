package ptpip

import (
	"io"
	"strings"

	"github.com/hanwen/go-ptpip/ptp"
)

// StringBytes encodes s as a PTP-IP string: UTF-16LE code units
// followed by a zero code unit. Invalid UTF-8 is replaced by U+FFFD.
func StringBytes(s string) []byte {
	enc, err := ptp.EncodeUTF16(strings.ToValidUTF8(s, "\uFFFD"))
	if err != nil {
		panic(err)
	}
	return append(enc, 0, 0)
}

// StringSize is the encoded size of s, including the terminator.
func StringSize(s string) int {
	return len(StringBytes(s))
}

// ReadString reads a zero-terminated UTF-16LE string, consuming at
// most budget bytes. A missing terminator within the budget is a
// *ptp.FormatError; a stream that ends first yields ptp.ErrEndOfInput.
func ReadString(r io.Reader, budget int) (string, error) {
	if budget < 0 {
		return "", &ptp.FormatError{What: "PTP-IP string", Reason: "negative budget"}
	}
	var units []byte
	for consumed := 0; ; consumed += 2 {
		switch budget - consumed {
		case 0:
			return "", &ptp.FormatError{What: "PTP-IP string", Reason: "missing terminator"}
		case 1:
			return "", &ptp.FormatError{What: "PTP-IP string", Reason: "odd number of bytes"}
		}
		u, err := readFull(r, 2, "PTP-IP string")
		if err != nil {
			return "", err
		}
		if u[0] == 0 && u[1] == 0 {
			break
		}
		units = append(units, u...)
	}
	return ptp.DecodeUTF16(units)
}

// parseString decodes a string filling exactly the region b.
func parseString(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", &ptp.FormatError{What: "PTP-IP string", Reason: "odd number of bytes"}
	}
	for i := 0; i < len(b); i += 2 {
		if b[i] != 0 || b[i+1] != 0 {
			continue
		}
		if i+2 != len(b) {
			return "", &ptp.FormatError{What: "PTP-IP string", Reason: "terminator before end of field"}
		}
		return ptp.DecodeUTF16(b[:i])
	}
	return "", &ptp.FormatError{What: "PTP-IP string", Reason: "missing terminator"}
}
