package ptp

import (
	"io"
	"math/big"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// MaxStringUnits is the largest number of UTF-16 code units a PTP
// string can carry; the count is a single byte.
const MaxStringUnits = 255

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeUTF16 returns s as little-endian UTF-16 without terminator.
func EncodeUTF16(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	return utf16le.NewEncoder().Bytes([]byte(s))
}

// DecodeUTF16 decodes little-endian UTF-16 code units. Unpaired
// surrogates decode to U+FFFD.
func DecodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", &FormatError{What: "UTF-16 string", Reason: "odd number of bytes"}
	}
	if len(b) == 0 {
		return "", nil
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StringBytes encodes s as a PTP string: one byte holding the number
// of UTF-16 code units, then the code units. No terminator is added.
// A string ending in NUL is rejected, since ReadString would drop it.
func StringBytes(s string) ([]byte, error) {
	if strings.HasSuffix(s, "\x00") {
		return nil, &FormatError{What: "STR", Reason: "trailing NUL"}
	}
	enc, err := EncodeUTF16(s)
	if err != nil {
		return nil, err
	}
	units := len(enc) / 2
	if units > MaxStringUnits {
		return nil, &RangeError{
			Type:  "STR",
			Value: big.NewInt(int64(units)),
			Min:   big.NewInt(0),
			Max:   big.NewInt(MaxStringUnits),
		}
	}
	return append([]byte{byte(units)}, enc...), nil
}

// EncodeString writes s as a PTP string.
func EncodeString(w io.Writer, s string) error {
	b, err := StringBytes(s)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ReadString reads a PTP string. Devices commonly include the
// terminating zero in the count; a single trailing zero code unit is
// dropped.
func ReadString(r io.Reader) (string, error) {
	cnt, err := readFull(r, 1, "STR length")
	if err != nil {
		return "", err
	}
	n := int(cnt[0])
	if n == 0 {
		return "", nil
	}
	data, err := readFull(r, 2*n, "STR data")
	if err != nil {
		return "", err
	}
	if data[2*n-2] == 0 && data[2*n-1] == 0 {
		data = data[:2*n-2]
	}
	return DecodeUTF16(data)
}
