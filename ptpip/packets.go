package ptpip

import (
	"encoding/binary"
	"io"

	"github.com/hanwen/go-ptpip/ptp"
)

var byteOrder = binary.LittleEndian

// Packet is a single PTP-IP packet. Payload derives the bytes that
// follow the header from the packet's fields.
type Packet interface {
	Type() PacketType
	Payload() []byte
}

// Encode returns the framed packet: length, type and payload.
func Encode(p Packet) ([]byte, error) {
	payload := p.Payload()
	if int64(len(payload)) > MaxPayloadSize {
		return nil, &SizeError{Type: p.Type(), Want: MaxPayloadSize, Got: int64(len(payload)), Limit: true}
	}
	h := Header{Length: ptp.UINT32(HeaderSize + len(payload)), Type: p.Type()}
	return append(h.Bytes(), payload...), nil
}

// WritePacket writes the framed packet in a single Write call.
func WritePacket(w io.Writer, p Packet) error {
	b, err := Encode(p)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// fields pulls fixed-width values off a payload whose size was
// already validated.
type fields []byte

func (f *fields) u16() ptp.UINT16 {
	v := byteOrder.Uint16(*f)
	*f = (*f)[2:]
	return ptp.UINT16(v)
}

func (f *fields) u32() ptp.UINT32 {
	v := byteOrder.Uint32(*f)
	*f = (*f)[4:]
	return ptp.UINT32(v)
}

func (f *fields) u64() ptp.UINT64 {
	v := byteOrder.Uint64(*f)
	*f = (*f)[8:]
	return ptp.UINT64(v)
}

func (f *fields) guid() GUID {
	var g GUID
	copy(g[:], *f)
	*f = (*f)[len(g):]
	return g
}

func appendU16(b []byte, v ptp.UINT16) []byte { return append(b, v.Bytes()...) }
func appendU32(b []byte, v ptp.UINT32) []byte { return append(b, v.Bytes()...) }
func appendU64(b []byte, v ptp.UINT64) []byte { return append(b, v.Bytes()...) }

// InitCommandRequest opens the command connection.
type InitCommandRequest struct {
	GUID            GUID
	Name            string
	ProtocolVersion ptp.UINT32
}

func (InitCommandRequest) Type() PacketType { return PT_InitCommandRequest }

func (p InitCommandRequest) Payload() []byte {
	b := append([]byte{}, p.GUID[:]...)
	b = append(b, StringBytes(p.Name)...)
	return appendU32(b, p.ProtocolVersion)
}

func decodeInitCommandRequest(b []byte) (Packet, error) {
	f := fields(b)
	p := InitCommandRequest{GUID: f.guid()}
	name, err := parseString(f[:len(f)-4])
	if err != nil {
		return nil, err
	}
	p.Name = name
	f = f[len(f)-4:]
	p.ProtocolVersion = f.u32()
	return p, nil
}

// InitCommandAck accepts a command connection.
type InitCommandAck struct {
	ConnectionNumber ptp.UINT32
	GUID             GUID
	Name             string
	ProtocolVersion  ptp.UINT32
}

func (InitCommandAck) Type() PacketType { return PT_InitCommandAck }

func (p InitCommandAck) Payload() []byte {
	b := appendU32(nil, p.ConnectionNumber)
	b = append(b, p.GUID[:]...)
	b = append(b, StringBytes(p.Name)...)
	return appendU32(b, p.ProtocolVersion)
}

func decodeInitCommandAck(b []byte) (Packet, error) {
	f := fields(b)
	p := InitCommandAck{ConnectionNumber: f.u32(), GUID: f.guid()}
	name, err := parseString(f[:len(f)-4])
	if err != nil {
		return nil, err
	}
	p.Name = name
	f = f[len(f)-4:]
	p.ProtocolVersion = f.u32()
	return p, nil
}

// InitEventRequest opens the event connection for a command
// connection.
type InitEventRequest struct {
	ConnectionNumber ptp.UINT32
}

func (InitEventRequest) Type() PacketType { return PT_InitEventRequest }

func (p InitEventRequest) Payload() []byte {
	return p.ConnectionNumber.Bytes()
}

func decodeInitEventRequest(b []byte) (Packet, error) {
	f := fields(b)
	return InitEventRequest{ConnectionNumber: f.u32()}, nil
}

type InitEventAck struct{}

func (InitEventAck) Type() PacketType { return PT_InitEventAck }
func (InitEventAck) Payload() []byte  { return []byte{} }

func decodeInitEventAck([]byte) (Packet, error) { return InitEventAck{}, nil }

// InitFail refuses a connection.
type InitFail struct {
	Reason ptp.UINT32
}

func (InitFail) Type() PacketType { return PT_InitFail }

func (p InitFail) Payload() []byte {
	return p.Reason.Bytes()
}

func (p InitFail) Err() error {
	return &InitFailError{Reason: p.Reason}
}

func decodeInitFail(b []byte) (Packet, error) {
	f := fields(b)
	return InitFail{Reason: f.u32()}, nil
}

// OperationRequest starts a transaction.
type OperationRequest struct {
	DataPhaseInfo ptp.UINT32
	OperationCode ptp.UINT16
	TransactionID ptp.UINT32
	P1            ptp.UINT32
	P2            ptp.UINT32
	P3            ptp.UINT32
	P4            ptp.UINT32
	P5            ptp.UINT32
}

// NewOperationRequest fills the parameters in order; missing ones are
// zero. At most ptp.MaxParams parameters are used.
func NewOperationRequest(phase ptp.UINT32, code ptp.UINT16, tid ptp.UINT32, params ...ptp.UINT32) OperationRequest {
	var ps [ptp.MaxParams]ptp.UINT32
	copy(ps[:], params)
	return OperationRequest{
		DataPhaseInfo: phase,
		OperationCode: code,
		TransactionID: tid,
		P1:            ps[0],
		P2:            ps[1],
		P3:            ps[2],
		P4:            ps[3],
		P5:            ps[4],
	}
}

func (OperationRequest) Type() PacketType { return PT_OperationRequest }

func (p OperationRequest) Payload() []byte {
	b := appendU32(make([]byte, 0, 30), p.DataPhaseInfo)
	b = appendU16(b, p.OperationCode)
	b = appendU32(b, p.TransactionID)
	for _, v := range p.Params() {
		b = appendU32(b, v)
	}
	return b
}

func (p OperationRequest) Params() [ptp.MaxParams]ptp.UINT32 {
	return [ptp.MaxParams]ptp.UINT32{p.P1, p.P2, p.P3, p.P4, p.P5}
}

func decodeOperationRequest(b []byte) (Packet, error) {
	f := fields(b)
	return OperationRequest{
		DataPhaseInfo: f.u32(),
		OperationCode: f.u16(),
		TransactionID: f.u32(),
		P1:            f.u32(),
		P2:            f.u32(),
		P3:            f.u32(),
		P4:            f.u32(),
		P5:            f.u32(),
	}, nil
}

// OperationResponse ends a transaction.
type OperationResponse struct {
	ResponseCode  ptp.UINT16
	TransactionID ptp.UINT32
	P1            ptp.UINT32
	P2            ptp.UINT32
	P3            ptp.UINT32
	P4            ptp.UINT32
	P5            ptp.UINT32
}

func (OperationResponse) Type() PacketType { return PT_OperationResponse }

func (p OperationResponse) Payload() []byte {
	b := appendU16(make([]byte, 0, 26), p.ResponseCode)
	b = appendU32(b, p.TransactionID)
	for _, v := range []ptp.UINT32{p.P1, p.P2, p.P3, p.P4, p.P5} {
		b = appendU32(b, v)
	}
	return b
}

// Response returns the transport independent response data set.
func (p OperationResponse) Response(session ptp.UINT32) ptp.Response {
	return ptp.Response{
		ResponseCode:  p.ResponseCode,
		SessionID:     session,
		TransactionID: p.TransactionID,
		P1:            p.P1,
		P2:            p.P2,
		P3:            p.P3,
		P4:            p.P4,
		P5:            p.P5,
	}
}

func decodeOperationResponse(b []byte) (Packet, error) {
	f := fields(b)
	return OperationResponse{
		ResponseCode:  f.u16(),
		TransactionID: f.u32(),
		P1:            f.u32(),
		P2:            f.u32(),
		P3:            f.u32(),
		P4:            f.u32(),
		P5:            f.u32(),
	}, nil
}

// Event is sent by the responder on the event connection.
type Event struct {
	EventCode     ptp.UINT16
	TransactionID ptp.UINT32
	P1            ptp.UINT32
	P2            ptp.UINT32
	P3            ptp.UINT32
}

func (Event) Type() PacketType { return PT_Event }

func (p Event) Payload() []byte {
	b := appendU16(make([]byte, 0, 18), p.EventCode)
	b = appendU32(b, p.TransactionID)
	b = appendU32(b, p.P1)
	b = appendU32(b, p.P2)
	return appendU32(b, p.P3)
}

func decodeEvent(b []byte) (Packet, error) {
	f := fields(b)
	return Event{
		EventCode:     f.u16(),
		TransactionID: f.u32(),
		P1:            f.u32(),
		P2:            f.u32(),
		P3:            f.u32(),
	}, nil
}

// StartData announces a data phase.
type StartData struct {
	TransactionID   ptp.UINT32
	TotalDataLength ptp.UINT64
}

func (StartData) Type() PacketType { return PT_StartData }

func (p StartData) Payload() []byte {
	b := appendU32(make([]byte, 0, 12), p.TransactionID)
	return appendU64(b, p.TotalDataLength)
}

// UnknownLength reports whether the sender did not announce a size.
func (p StartData) UnknownLength() bool {
	return p.TotalDataLength == UnknownDataLength
}

func decodeStartData(b []byte) (Packet, error) {
	f := fields(b)
	return StartData{TransactionID: f.u32(), TotalDataLength: f.u64()}, nil
}

// Data carries a chunk of a data phase.
type Data struct {
	TransactionID ptp.UINT32
	Chunk         []byte
}

func (Data) Type() PacketType { return PT_Data }

func (p Data) Payload() []byte {
	b := appendU32(make([]byte, 0, 4+len(p.Chunk)), p.TransactionID)
	return append(b, p.Chunk...)
}

func decodeData(b []byte) (Packet, error) {
	f := fields(b)
	return Data{TransactionID: f.u32(), Chunk: []byte(f)}, nil
}

// Cancel aborts the data phase of a transaction.
type Cancel struct {
	TransactionID ptp.UINT32
}

func (Cancel) Type() PacketType { return PT_Cancel }

func (p Cancel) Payload() []byte {
	return p.TransactionID.Bytes()
}

func decodeCancel(b []byte) (Packet, error) {
	f := fields(b)
	return Cancel{TransactionID: f.u32()}, nil
}

// EndData carries the final chunk of a data phase.
type EndData struct {
	TransactionID ptp.UINT32
	Chunk         []byte
}

func (EndData) Type() PacketType { return PT_EndData }

func (p EndData) Payload() []byte {
	b := appendU32(make([]byte, 0, 4+len(p.Chunk)), p.TransactionID)
	return append(b, p.Chunk...)
}

func decodeEndData(b []byte) (Packet, error) {
	f := fields(b)
	return EndData{TransactionID: f.u32(), Chunk: []byte(f)}, nil
}

type ProbeRequest struct{}

func (ProbeRequest) Type() PacketType { return PT_ProbeRequest }
func (ProbeRequest) Payload() []byte  { return []byte{} }

func decodeProbeRequest([]byte) (Packet, error) { return ProbeRequest{}, nil }

type ProbeResponse struct{}

func (ProbeResponse) Type() PacketType { return PT_ProbeResponse }
func (ProbeResponse) Payload() []byte  { return []byte{} }

func decodeProbeResponse([]byte) (Packet, error) { return ProbeResponse{}, nil }
