package ptpip

import (
	"io"

	"github.com/pkg/errors"
)

// variant describes the payload size and parser of a packet type.
type variant struct {
	size    int64
	atLeast bool
	decode  func([]byte) (Packet, error)
}

// Minimum sizes of the variable-size packets count the empty name,
// which is just the terminator.
var variants = map[PacketType]variant{
	PT_InitCommandRequest: {16 + 2 + 4, true, decodeInitCommandRequest},
	PT_InitCommandAck:     {4 + 16 + 2 + 4, true, decodeInitCommandAck},
	PT_InitEventRequest:   {4, false, decodeInitEventRequest},
	PT_InitEventAck:       {0, false, decodeInitEventAck},
	PT_InitFail:           {4, false, decodeInitFail},
	PT_OperationRequest:   {4 + 2 + 4 + 5*4, false, decodeOperationRequest},
	PT_OperationResponse:  {2 + 4 + 5*4, false, decodeOperationResponse},
	PT_Event:              {2 + 4 + 3*4, false, decodeEvent},
	PT_StartData:          {4 + 8, false, decodeStartData},
	PT_Data:               {4, true, decodeData},
	PT_Cancel:             {4, false, decodeCancel},
	PT_EndData:            {4, true, decodeEndData},
	PT_ProbeRequest:       {0, false, decodeProbeRequest},
	PT_ProbeResponse:      {0, false, decodeProbeResponse},
}

// ReadPacket reads one packet of any type. For an undefined type tag
// the payload is consumed and returned in an *UnknownTypeError, so the
// stream stays in sync.
func ReadPacket(r io.Reader, limits Limits) (Packet, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return ReadBody(r, h, limits)
}

// ReadBody reads and parses the payload announced by h.
func ReadBody(r io.Reader, h Header, limits Limits) (Packet, error) {
	v, ok := variants[h.Type]
	if !ok {
		n, err := assertMinSize(h, 0, limits)
		if err != nil {
			return nil, err
		}
		payload, err := readFull(r, n, "payload")
		if err != nil {
			return nil, err
		}
		return nil, &UnknownTypeError{Type: h.Type, Payload: payload}
	}

	var n int64
	var err error
	if v.atLeast {
		n, err = assertMinSize(h, v.size, limits)
	} else {
		n, err = assertSize(h, v.size)
	}
	if err != nil {
		return nil, err
	}
	payload, err := readFull(r, n, h.Type.String()+" payload")
	if err != nil {
		return nil, err
	}
	p, err := v.decode(payload)
	if err != nil {
		return nil, errors.WithMessage(err, h.Type.String())
	}
	return p, nil
}

// readVariant reads a packet that must be of type want. The type is
// checked before the length, and both before the payload is read.
func readVariant(r io.Reader, want PacketType, limits Limits) (Packet, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if err := assertType(h.Type, want); err != nil {
		return nil, err
	}
	return ReadBody(r, h, limits)
}

func ReadInitCommandRequest(r io.Reader) (InitCommandRequest, error) {
	p, err := readVariant(r, PT_InitCommandRequest, DefaultLimits())
	if err != nil {
		return InitCommandRequest{}, err
	}
	return p.(InitCommandRequest), nil
}

func ReadInitCommandAck(r io.Reader) (InitCommandAck, error) {
	p, err := readVariant(r, PT_InitCommandAck, DefaultLimits())
	if err != nil {
		return InitCommandAck{}, err
	}
	return p.(InitCommandAck), nil
}

func ReadInitEventRequest(r io.Reader) (InitEventRequest, error) {
	p, err := readVariant(r, PT_InitEventRequest, DefaultLimits())
	if err != nil {
		return InitEventRequest{}, err
	}
	return p.(InitEventRequest), nil
}

func ReadInitEventAck(r io.Reader) (InitEventAck, error) {
	p, err := readVariant(r, PT_InitEventAck, DefaultLimits())
	if err != nil {
		return InitEventAck{}, err
	}
	return p.(InitEventAck), nil
}

func ReadInitFail(r io.Reader) (InitFail, error) {
	p, err := readVariant(r, PT_InitFail, DefaultLimits())
	if err != nil {
		return InitFail{}, err
	}
	return p.(InitFail), nil
}

func ReadOperationRequest(r io.Reader) (OperationRequest, error) {
	p, err := readVariant(r, PT_OperationRequest, DefaultLimits())
	if err != nil {
		return OperationRequest{}, err
	}
	return p.(OperationRequest), nil
}

func ReadOperationResponse(r io.Reader) (OperationResponse, error) {
	p, err := readVariant(r, PT_OperationResponse, DefaultLimits())
	if err != nil {
		return OperationResponse{}, err
	}
	return p.(OperationResponse), nil
}

func ReadEvent(r io.Reader) (Event, error) {
	p, err := readVariant(r, PT_Event, DefaultLimits())
	if err != nil {
		return Event{}, err
	}
	return p.(Event), nil
}

func ReadStartData(r io.Reader) (StartData, error) {
	p, err := readVariant(r, PT_StartData, DefaultLimits())
	if err != nil {
		return StartData{}, err
	}
	return p.(StartData), nil
}

func ReadData(r io.Reader, limits Limits) (Data, error) {
	p, err := readVariant(r, PT_Data, limits)
	if err != nil {
		return Data{}, err
	}
	return p.(Data), nil
}

func ReadCancel(r io.Reader) (Cancel, error) {
	p, err := readVariant(r, PT_Cancel, DefaultLimits())
	if err != nil {
		return Cancel{}, err
	}
	return p.(Cancel), nil
}

func ReadEndData(r io.Reader, limits Limits) (EndData, error) {
	p, err := readVariant(r, PT_EndData, limits)
	if err != nil {
		return EndData{}, err
	}
	return p.(EndData), nil
}

func ReadProbeRequest(r io.Reader) (ProbeRequest, error) {
	p, err := readVariant(r, PT_ProbeRequest, DefaultLimits())
	if err != nil {
		return ProbeRequest{}, err
	}
	return p.(ProbeRequest), nil
}

func ReadProbeResponse(r io.Reader) (ProbeResponse, error) {
	p, err := readVariant(r, PT_ProbeResponse, DefaultLimits())
	if err != nil {
		return ProbeResponse{}, err
	}
	return p.(ProbeResponse), nil
}
