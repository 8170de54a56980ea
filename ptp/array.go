package ptp

import (
	"bytes"
	"io"
)

func ReadAUINT16(r io.Reader) ([]UINT16, error) {
	var a []UINT16
	err := DecodeArray(r, &a)
	return a, err
}

func ReadAUINT32(r io.Reader) ([]UINT32, error) {
	var a []UINT32
	err := DecodeArray(r, &a)
	return a, err
}

func ReadAINT8(r io.Reader) ([]INT8, error) {
	var a []INT8
	err := DecodeArray(r, &a)
	return a, err
}

func ReadAINT32(r io.Reader) ([]INT32, error) {
	var a []INT32
	err := DecodeArray(r, &a)
	return a, err
}

// ArrayBytes returns the encoding of a slice of fixed-width values.
func ArrayBytes(slice interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeArray(&buf, slice); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func AUINT16Bytes(a []UINT16) []byte {
	b, _ := ArrayBytes(a)
	return b
}

func AUINT32Bytes(a []UINT32) []byte {
	b, _ := ArrayBytes(a)
	return b
}
