package ptpip

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hanwen/go-ptpip/ptp"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}

var testGUID = GUID{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

var allPackets = []Packet{
	InitCommandRequest{GUID: testGUID, Name: "laptop", ProtocolVersion: ProtocolVersion},
	InitCommandAck{ConnectionNumber: 3, GUID: testGUID, Name: "Kamera é", ProtocolVersion: ProtocolVersion},
	InitEventRequest{ConnectionNumber: 3},
	InitEventAck{},
	InitFail{Reason: 2},
	NewOperationRequest(DataPhaseIn, ptp.OC_GetObjectHandles, 7, 0x10001, 0, 0xFFFFFFFF),
	OperationResponse{ResponseCode: ptp.RC_OK, TransactionID: 7, P1: 1, P5: 5},
	Event{EventCode: ptp.EC_ObjectAdded, TransactionID: 0xFFFFFFFF, P1: 0x42},
	StartData{TransactionID: 1, TotalDataLength: 0x100},
	Data{TransactionID: 1, Chunk: []byte{1, 2, 3}},
	Cancel{TransactionID: 1},
	EndData{TransactionID: 1, Chunk: []byte{4}},
	ProbeRequest{},
	ProbeResponse{},
}

func TestPacketRoundTrip(t *testing.T) {
	for _, p := range allPackets {
		b, err := Encode(p)
		require.NoError(t, err, "%v", p.Type())
		require.Equal(t, HeaderSize+len(p.Payload()), len(b))

		got, err := ReadPacket(bytes.NewReader(b), DefaultLimits())
		require.NoError(t, err, "%v", p.Type())
		require.Equal(t, p, got)
	}
}

func TestAllTypesKnown(t *testing.T) {
	for tp := PT_InitCommandRequest; tp <= PT_ProbeResponse; tp++ {
		require.True(t, tp.Known(), "%v", tp)
		_, ok := variants[tp]
		require.True(t, ok, "%v", tp)
	}
	require.False(t, PacketType(0).Known())
	require.False(t, PacketType(15).Known())
	require.Equal(t, "PacketType(0xf)", PacketType(15).String())
}

func TestStartDataFrame(t *testing.T) {
	b, err := Encode(StartData{TransactionID: 1, TotalDataLength: 0x100})
	require.NoError(t, err)
	require.Equal(t, unhex(t, "14000000 09000000 01000000 0001000000000000"), b)
}

func TestInitCommandRequestFrame(t *testing.T) {
	p := InitCommandRequest{GUID: testGUID, Name: "AB", ProtocolVersion: ProtocolVersion}
	b, err := Encode(p)
	require.NoError(t, err)
	want := unhex(t, `22000000 01000000
000102030405060708090a0b0c0d0e0f
4100 4200 0000
00000100`)
	require.Equal(t, want, b)
}

func TestOperationRequestParams(t *testing.T) {
	p := NewOperationRequest(DataPhaseOut, ptp.OC_SendObject, 2, 1, 2)
	require.Equal(t, [ptp.MaxParams]ptp.UINT32{1, 2, 0, 0, 0}, p.Params())
	require.Len(t, p.Payload(), 30)
}

func TestFixedSizeMismatch(t *testing.T) {
	for _, p := range allPackets {
		v := variants[p.Type()]
		if v.atLeast {
			continue
		}
		payload := p.Payload()
		for _, delta := range []int{-1, 1} {
			n := len(payload) + delta
			if n < 0 {
				continue
			}
			body := make([]byte, n)
			copy(body, payload)
			h := Header{Length: ptp.UINT32(HeaderSize + n), Type: p.Type()}
			_, err := ReadPacket(bytes.NewReader(append(h.Bytes(), body...)), DefaultLimits())

			var se *SizeError
			require.True(t, errors.As(err, &se), "%v %+d: %v", p.Type(), delta, err)
			require.Equal(t, v.size, se.Want)
			require.Equal(t, int64(n), se.Got)
			require.False(t, se.AtLeast)
		}
	}
}

func TestVariableSizeBelowMinimum(t *testing.T) {
	for tp, v := range variants {
		if !v.atLeast {
			continue
		}
		h := Header{Length: ptp.UINT32(HeaderSize + v.size - 1), Type: tp}
		b := append(h.Bytes(), make([]byte, v.size-1)...)
		_, err := ReadPacket(bytes.NewReader(b), DefaultLimits())

		var se *SizeError
		require.True(t, errors.As(err, &se), "%v: %v", tp, err)
		require.True(t, se.AtLeast)
		require.Equal(t, v.size, se.Want)
	}
}

func TestHeaderLengthTooSmall(t *testing.T) {
	h := Header{Length: 7, Type: PT_ProbeRequest}
	_, err := ReadPacket(bytes.NewReader(h.Bytes()), DefaultLimits())
	var se *SizeError
	require.True(t, errors.As(err, &se), "%v", err)
}

func TestTypeMismatch(t *testing.T) {
	b, err := Encode(InitCommandRequest{GUID: testGUID, Name: "x", ProtocolVersion: ProtocolVersion})
	require.NoError(t, err)

	_, err = ReadInitCommandAck(bytes.NewReader(b))
	var te *TypeError
	require.True(t, errors.As(err, &te), "%v", err)
	require.Equal(t, PT_InitCommandAck, te.Want)
	require.Equal(t, PT_InitCommandRequest, te.Got)
	require.Contains(t, err.Error(), "InitCommandAck")
	require.Contains(t, err.Error(), "InitCommandRequest")
}

func TestTypeCheckedBeforeSize(t *testing.T) {
	// a 3 byte Cancel read as StartData reports the type, not the size.
	b := append(Header{Length: HeaderSize + 3, Type: PT_Cancel}.Bytes(), 1, 2, 3)
	_, err := ReadStartData(bytes.NewReader(b))
	var te *TypeError
	require.True(t, errors.As(err, &te), "%v", err)
}

func TestTypedReaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePacket(&buf, Event{EventCode: ptp.EC_DevicePropChanged, P1: ptp.UINT32(ptp.DPC_BatteryLevel)}))
	require.NoError(t, WritePacket(&buf, StartData{TransactionID: 9, TotalDataLength: UnknownDataLength}))
	require.NoError(t, WritePacket(&buf, EndData{TransactionID: 9}))

	ev, err := ReadEvent(&buf)
	require.NoError(t, err)
	require.Equal(t, ptp.UINT16(ptp.EC_DevicePropChanged), ev.EventCode)

	sd, err := ReadStartData(&buf)
	require.NoError(t, err)
	require.True(t, sd.UnknownLength())

	ed, err := ReadEndData(&buf, DefaultLimits())
	require.NoError(t, err)
	require.Empty(t, ed.Chunk)
	require.Equal(t, ptp.UINT32(9), ed.TransactionID)
}

func TestTruncatedPacket(t *testing.T) {
	b, err := Encode(NewOperationRequest(DataPhaseIn, ptp.OC_GetDeviceInfo, 0))
	require.NoError(t, err)
	for _, n := range []int{0, 4, HeaderSize, len(b) - 1} {
		_, err := ReadPacket(bytes.NewReader(b[:n]), DefaultLimits())
		require.True(t, errors.Is(err, ptp.ErrEndOfInput), "%d: %v", n, err)
	}
}

func TestUnknownType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Header{Length: HeaderSize + 2, Type: 0x20}.Bytes())
	buf.Write([]byte{0xaa, 0xbb})
	require.NoError(t, WritePacket(&buf, ProbeRequest{}))

	_, err := ReadPacket(&buf, DefaultLimits())
	var ue *UnknownTypeError
	require.True(t, errors.As(err, &ue), "%v", err)
	require.Equal(t, PacketType(0x20), ue.Type)
	require.Equal(t, []byte{0xaa, 0xbb}, ue.Payload)

	// the stream is still in sync.
	p, err := ReadPacket(&buf, DefaultLimits())
	require.NoError(t, err)
	require.Equal(t, ProbeRequest{}, p)
}

func TestPayloadLimit(t *testing.T) {
	h := Header{Length: HeaderSize + 1025, Type: PT_Data}
	_, err := ReadPacket(bytes.NewReader(h.Bytes()), Limits{MaxPayload: 1024})
	var se *SizeError
	require.True(t, errors.As(err, &se), "%v", err)
	require.True(t, se.Limit)
	require.Equal(t, int64(1024), se.Want)
}

func TestZeroLimitsDefault(t *testing.T) {
	for _, typ := range []PacketType{PT_Data, PT_EndData, 0x20} {
		h := Header{Length: 0xfffffff0, Type: typ}
		_, err := ReadPacket(bytes.NewReader(h.Bytes()), Limits{})
		var se *SizeError
		require.True(t, errors.As(err, &se), "%v: %v", typ, err)
		require.True(t, se.Limit, "%v", typ)
		require.Equal(t, DefaultLimits().MaxPayload, se.Want)
	}
}

func TestNameStrings(t *testing.T) {
	frame := func(name []byte) []byte {
		payload := append(append([]byte{}, testGUID[:]...), name...)
		payload = append(payload, ptp.UINT32(ProtocolVersion).Bytes()...)
		h := Header{Length: ptp.UINT32(HeaderSize + len(payload)), Type: PT_InitCommandRequest}
		return append(h.Bytes(), payload...)
	}

	for name, raw := range map[string][]byte{
		"missing terminator": {0x41, 0, 0x42, 0},
		"odd byte":           {0x41, 0, 0, 0, 0x42},
		"early terminator":   {0x41, 0, 0, 0, 0x42, 0, 0, 0},
	} {
		_, err := ReadPacket(bytes.NewReader(frame(raw)), DefaultLimits())
		var fe *ptp.FormatError
		require.True(t, errors.As(err, &fe), "%s: %v", name, err)
		require.Contains(t, err.Error(), "InitCommandRequest", name)
	}

	p, err := ReadInitCommandRequest(bytes.NewReader(frame([]byte{0, 0})))
	require.NoError(t, err)
	require.Equal(t, "", p.Name)
}

func TestReadString(t *testing.T) {
	b := append(StringBytes("ab"), 0xff)
	r := bytes.NewReader(b)
	s, err := ReadString(r, len(b))
	require.NoError(t, err)
	require.Equal(t, "ab", s)
	require.Equal(t, 1, r.Len())

	_, err = ReadString(bytes.NewReader([]byte{0x41, 0, 0x42, 0}), 4)
	var fe *ptp.FormatError
	require.True(t, errors.As(err, &fe), "%v", err)

	_, err = ReadString(bytes.NewReader([]byte{0x41, 0, 0x42}), 3)
	require.True(t, errors.As(err, &fe), "%v", err)

	_, err = ReadString(bytes.NewReader([]byte{0x41, 0}), 10)
	require.True(t, errors.Is(err, ptp.ErrEndOfInput), "%v", err)

	_, err = ReadString(bytes.NewReader([]byte{0x41, 0, 0, 0}), -2)
	require.True(t, errors.As(err, &fe), "%v", err)
	require.Contains(t, err.Error(), "negative budget")

	require.Equal(t, 6, StringSize("ab"))
	require.Equal(t, []byte{0, 0}, StringBytes(""))
}

func TestGUID(t *testing.T) {
	s := testGUID.String()
	require.Equal(t, "00010203-0405-0607-0809-0a0b0c0d0e0f", s)

	g, err := ParseGUID(s)
	require.NoError(t, err)
	require.Equal(t, testGUID, g)

	_, err = ParseGUID("0102")
	require.Error(t, err)

	var u GUID
	require.NoError(t, u.UnmarshalText([]byte("000102030405060708090a0b0c0d0e0f")))
	require.Equal(t, testGUID, u)

	r1, err := NewGUID()
	require.NoError(t, err)
	r2, err := NewGUID()
	require.NoError(t, err)
	require.NotEqual(t, r1, r2)
}
