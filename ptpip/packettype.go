package ptpip

import "fmt"

// PacketType is the type tag of a PTP-IP packet.
type PacketType uint32

const (
	PT_InitCommandRequest PacketType = 0x0001
	PT_InitCommandAck     PacketType = 0x0002
	PT_InitEventRequest   PacketType = 0x0003
	PT_InitEventAck       PacketType = 0x0004
	PT_InitFail           PacketType = 0x0005
	PT_OperationRequest   PacketType = 0x0006
	PT_OperationResponse  PacketType = 0x0007
	PT_Event              PacketType = 0x0008
	PT_StartData          PacketType = 0x0009
	PT_Data               PacketType = 0x000A
	PT_Cancel             PacketType = 0x000B
	PT_EndData            PacketType = 0x000C
	PT_ProbeRequest       PacketType = 0x000D
	PT_ProbeResponse      PacketType = 0x000E
)

var PT_names = map[int]string{
	0x0001: "InitCommandRequest",
	0x0002: "InitCommandAck",
	0x0003: "InitEventRequest",
	0x0004: "InitEventAck",
	0x0005: "InitFail",
	0x0006: "OperationRequest",
	0x0007: "OperationResponse",
	0x0008: "Event",
	0x0009: "StartData",
	0x000A: "Data",
	0x000B: "Cancel",
	0x000C: "EndData",
	0x000D: "ProbeRequest",
	0x000E: "ProbeResponse",
}

// Known reports whether t is one of the defined packet types.
func (t PacketType) Known() bool {
	_, ok := PT_names[int(t)]
	return ok
}

func (t PacketType) String() string {
	if n, ok := PT_names[int(t)]; ok {
		return n
	}
	return fmt.Sprintf("PacketType(0x%x)", uint32(t))
}

// Ports and protocol constants.
const (
	DefaultPort     = 15740
	ProtocolVersion = 0x00010000
)

// Data phase of an OperationRequest.
const (
	DataPhaseUnknown = 0x00000000
	DataPhaseIn      = 0x00000001 // no data, or data from the responder
	DataPhaseOut     = 0x00000002 // data from the initiator
)

// UnknownDataLength in StartData announces a transfer of unknown size.
const UnknownDataLength = 0xFFFFFFFFFFFFFFFF
