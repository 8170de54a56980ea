package ptpip

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/hanwen/go-ptpip/log"
	"github.com/hanwen/go-ptpip/ptp"
)

// fakeResponder serves one command and one event connection over
// net.Pipe.
type fakeResponder struct {
	refuse  ptp.UINT32
	info    ptp.DeviceInfo
	objects map[ptp.UINT32][]byte
	events  []Event
	probed  chan struct{}
	dials   int
}

func newFakeResponder() *fakeResponder {
	return &fakeResponder{
		info: ptp.DeviceInfo{
			StandardVersion:     100,
			Manufacturer:        "Fake",
			Model:               "PTP-IP 1",
			OperationsSupported: []ptp.UINT16{ptp.OC_GetDeviceInfo, ptp.OC_OpenSession},
		},
		objects: map[ptp.UINT32][]byte{},
		probed:  make(chan struct{}),
	}
}

func (f *fakeResponder) dial(ctx context.Context) (net.Conn, error) {
	client, server := net.Pipe()
	f.dials++
	if f.dials == 1 {
		go f.serveCommand(server)
	} else {
		go f.serveEvents(server)
	}
	return client, nil
}

func (f *fakeResponder) serveCommand(conn net.Conn) {
	defer conn.Close()
	if _, err := ReadInitCommandRequest(conn); err != nil {
		return
	}
	if f.refuse != 0 {
		WritePacket(conn, InitFail{Reason: f.refuse})
		return
	}
	if err := WritePacket(conn, InitCommandAck{
		ConnectionNumber: 1,
		GUID:             testGUID,
		Name:             "fake",
		ProtocolVersion:  ProtocolVersion,
	}); err != nil {
		return
	}
	for {
		req, err := ReadOperationRequest(conn)
		if err != nil {
			return
		}
		rep, err := f.handle(conn, req)
		if err != nil {
			return
		}
		rep.TransactionID = req.TransactionID
		if err := WritePacket(conn, rep); err != nil {
			return
		}
	}
}

func (f *fakeResponder) handle(conn net.Conn, req OperationRequest) (OperationResponse, error) {
	ok := OperationResponse{ResponseCode: ptp.RC_OK}
	switch req.OperationCode {
	case ptp.OC_OpenSession, ptp.OC_CloseSession:
		return ok, nil
	case ptp.OC_GetDeviceInfo:
		var buf bytes.Buffer
		if err := ptp.Encode(&buf, &f.info); err != nil {
			return ok, err
		}
		_, err := WriteData(conn, req.TransactionID, &buf, int64(buf.Len()), 0)
		return ok, err
	case ptp.OC_GetNumObjects:
		ok.P1 = ptp.UINT32(len(f.objects))
		return ok, nil
	case ptp.OC_GetObject:
		data, found := f.objects[req.P1]
		if !found {
			return OperationResponse{ResponseCode: ptp.RC_InvalidObjectHandle}, nil
		}
		_, err := WriteData(conn, req.TransactionID, bytes.NewReader(data), int64(len(data)), 16)
		return ok, err
	case ptp.OC_GetThumb:
		for _, p := range []Packet{
			StartData{TransactionID: req.TransactionID, TotalDataLength: 100},
			Data{TransactionID: req.TransactionID, Chunk: make([]byte, 10)},
			Cancel{TransactionID: req.TransactionID},
		} {
			if err := WritePacket(conn, p); err != nil {
				return ok, err
			}
		}
		return OperationResponse{ResponseCode: ptp.RC_TransactionCanceled}, nil
	case ptp.OC_SendObject:
		var buf bytes.Buffer
		var d DataReceiver
		d.Expect(&buf)
		for {
			p, err := ReadPacket(conn, DefaultLimits())
			if err != nil {
				return ok, err
			}
			done, err := d.Handle(p)
			if err != nil {
				return ok, err
			}
			if done {
				break
			}
		}
		f.objects[ptp.UINT32(len(f.objects)+1)] = buf.Bytes()
		return ok, nil
	}
	return OperationResponse{ResponseCode: ptp.RC_OperationNotSupported}, nil
}

func (f *fakeResponder) serveEvents(conn net.Conn) {
	defer conn.Close()
	req, err := ReadInitEventRequest(conn)
	if err != nil {
		return
	}
	if req.ConnectionNumber != 1 {
		WritePacket(conn, InitFail{Reason: 1})
		return
	}
	if err := WritePacket(conn, InitEventAck{}); err != nil {
		return
	}
	for _, e := range f.events {
		if err := WritePacket(conn, e); err != nil {
			return
		}
	}
	if err := WritePacket(conn, ProbeRequest{}); err != nil {
		return
	}
	if _, err := ReadProbeResponse(conn); err != nil {
		return
	}
	close(f.probed)
	io.Copy(io.Discard, conn)
}

func testConfig() Config {
	c := DefaultConfig()
	c.Name = "test"
	c.Timeout = 5 * time.Second
	c.Log = log.Quiet()
	return c
}

func connect(t *testing.T, f *fakeResponder, config Config) *Conn {
	t.Helper()
	c, err := NewConn(context.Background(), f.dial, config)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestHandshake(t *testing.T) {
	f := newFakeResponder()
	c := connect(t, f, testConfig())
	require.Equal(t, 2, f.dials)
	require.Equal(t, "fake", c.Responder().Name)
	require.Equal(t, testGUID, c.Responder().GUID)
	require.Equal(t, ptp.UINT32(1), c.Responder().ConnectionNumber)
}

func TestHandshakeRefused(t *testing.T) {
	f := newFakeResponder()
	f.refuse = 3
	_, err := NewConn(context.Background(), f.dial, testConfig())
	var ie *InitFailError
	require.True(t, errors.As(err, &ie), "%v", err)
	require.Equal(t, ptp.UINT32(3), ie.Reason)
	require.Equal(t, 1, f.dials)
}

func TestSessionTransactions(t *testing.T) {
	config := testConfig()
	config.Metrics = NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, config.Metrics.Register(reg))

	f := newFakeResponder()
	c := connect(t, f, config)

	require.NoError(t, c.OpenSession())
	require.NotZero(t, c.SessionID())
	require.Error(t, c.OpenSession())

	var info ptp.DeviceInfo
	require.NoError(t, c.GetDeviceInfo(&info))
	require.Equal(t, "Fake", info.Manufacturer)
	require.Equal(t, f.info.OperationsSupported, info.OperationsSupported)

	require.Equal(t, 1.0, testutil.ToFloat64(config.Metrics.Transactions.WithLabelValues("GetDeviceInfo", "OK")))
	require.Equal(t, 1.0, testutil.ToFloat64(config.Metrics.Transactions.WithLabelValues("OpenSession", "OK")))

	require.NoError(t, c.CloseSession())
	require.Zero(t, c.SessionID())
}

func TestSendAndGetObject(t *testing.T) {
	f := newFakeResponder()
	c := connect(t, f, testConfig())
	require.NoError(t, c.OpenSession())

	content := bytes.Repeat([]byte("ptp-ip "), 100)
	require.NoError(t, c.SendObject(bytes.NewReader(content), int64(len(content))))

	n, err := c.GetNumObjects(0xFFFFFFFF, 0, 0)
	require.NoError(t, err)
	require.Equal(t, ptp.UINT32(1), n)

	var got bytes.Buffer
	require.NoError(t, c.GetObject(1, &got))
	require.Equal(t, content, got.Bytes())
}

func TestResponseCodeError(t *testing.T) {
	f := newFakeResponder()
	c := connect(t, f, testConfig())
	require.NoError(t, c.OpenSession())

	err := c.GetObject(42, io.Discard)
	var rc ptp.RCError
	require.True(t, errors.As(err, &rc), "%v", err)
	require.Equal(t, ptp.RCError(ptp.RC_InvalidObjectHandle), rc)

	err = c.InitiateCapture(0, 0)
	require.Equal(t, ptp.RCError(ptp.RC_OperationNotSupported), err)

	// the connection is still usable.
	var info ptp.DeviceInfo
	require.NoError(t, c.GetDeviceInfo(&info))
}

func TestCancelledTransfer(t *testing.T) {
	f := newFakeResponder()
	c := connect(t, f, testConfig())
	require.NoError(t, c.OpenSession())

	err := c.GetThumb(1, io.Discard)
	var ce *CancelledError
	require.True(t, errors.As(err, &ce), "%v", err)

	var info ptp.DeviceInfo
	require.NoError(t, c.GetDeviceInfo(&info))
}

func TestUnexpectedData(t *testing.T) {
	f := newFakeResponder()
	c := connect(t, f, testConfig())

	var req, rep ptp.Container
	req.Code = ptp.OC_GetDeviceInfo
	err := c.RunTransaction(&req, &rep, nil, nil, 0)
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
}

func TestServeEvents(t *testing.T) {
	f := newFakeResponder()
	f.events = []Event{
		{EventCode: ptp.EC_ObjectAdded, TransactionID: 0xFFFFFFFF, P1: 5},
		{EventCode: ptp.EC_CaptureComplete, TransactionID: 0xFFFFFFFF},
	}
	c := connect(t, f, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Event, len(f.events))
	errc := make(chan error, 1)
	go func() {
		errc <- c.ServeEvents(ctx, func(e Event) { got <- e })
	}()

	for _, want := range f.events {
		select {
		case e := <-got:
			require.Equal(t, want, e)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for event")
		}
	}
	select {
	case <-f.probed:
	case <-time.After(5 * time.Second):
		t.Fatal("probe not answered")
	}

	cancel()
	require.True(t, errors.Is(<-errc, context.Canceled))
}
