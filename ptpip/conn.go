package ptpip

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/paulbellamy/ratecounter"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/hanwen/go-ptpip/log"
	"github.com/hanwen/go-ptpip/ptp"
)

// DialFunc opens one TCP connection to the responder. It is called
// twice, for the command and the event connection.
type DialFunc func(ctx context.Context) (net.Conn, error)

// Conn is an initiator's connection to a PTP-IP responder: a command
// connection carrying transactions and an event connection.
type Conn struct {
	config Config
	log    *log.Children

	cmd net.Conn
	evt net.Conn

	// mu serialises transactions on cmd; evtMu guards writes to evt.
	mu    sync.Mutex
	evtMu sync.Mutex

	tid *atomic.Uint32
	sid *atomic.Uint32

	responder InitCommandAck

	rate *ratecounter.RateCounter
}

// Dial connects to addr ("host" or "host:port") and performs the
// PTP-IP handshake.
func Dial(ctx context.Context, addr string, config Config) (*Conn, error) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}
	d := net.Dialer{Timeout: config.Timeout}
	return NewConn(ctx, func(ctx context.Context) (net.Conn, error) {
		return d.DialContext(ctx, "tcp", addr)
	}, config)
}

// NewConn opens the command connection, sends InitCommandRequest,
// then opens the event connection with the returned connection
// number.
func NewConn(ctx context.Context, dial DialFunc, config Config) (*Conn, error) {
	if config.Limits.MaxPayload == 0 {
		config.Limits = DefaultLimits()
	}
	if config.ProtocolVersion == 0 {
		config.ProtocolVersion = ProtocolVersion
	}
	c := &Conn{
		config: config,
		log:    config.children(),
		tid:    atomic.NewUint32(0),
		sid:    atomic.NewUint32(0),
		rate:   ratecounter.NewRateCounter(time.Second),
	}

	cmd, err := dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("ptpip: dialing command connection: %w", err)
	}
	c.cmd = cmd
	if err := c.initCommand(); err != nil {
		cmd.Close()
		return nil, err
	}

	evt, err := dial(ctx)
	if err != nil {
		cmd.Close()
		return nil, fmt.Errorf("ptpip: dialing event connection: %w", err)
	}
	c.evt = evt
	if err := c.initEvent(); err != nil {
		c.closeConns()
		return nil, err
	}
	c.log.PTPIP.Infof("connected to %q (%v), connection %d",
		c.responder.Name, c.responder.GUID, uint32(c.responder.ConnectionNumber))
	return c, nil
}

func (c *Conn) deadline(conn net.Conn) func() {
	if c.config.Timeout <= 0 {
		return func() {}
	}
	conn.SetDeadline(time.Now().Add(c.config.Timeout))
	return func() { conn.SetDeadline(time.Time{}) }
}

func (c *Conn) writePacket(conn net.Conn, p Packet) error {
	if c.log.PTPIP.IsDebug() {
		c.log.PTPIP.Debugf("send %v", p.Type())
	}
	if err := WritePacket(conn, p); err != nil {
		return err
	}
	c.config.Metrics.packetWritten(p.Type())
	return nil
}

func (c *Conn) readPacket(conn net.Conn) (Packet, error) {
	p, err := ReadPacket(conn, c.config.Limits)
	if err != nil {
		if u, ok := err.(*UnknownTypeError); ok {
			c.config.Metrics.packetRead(u.Type)
		}
		return nil, err
	}
	c.config.Metrics.packetRead(p.Type())
	if c.log.PTPIP.IsDebug() {
		c.log.PTPIP.Debugf("recv %v", p.Type())
	}
	return p, nil
}

func (c *Conn) initCommand() error {
	defer c.deadline(c.cmd)()
	req := InitCommandRequest{
		GUID:            c.config.GUID,
		Name:            c.config.Name,
		ProtocolVersion: c.config.ProtocolVersion,
	}
	if err := c.writePacket(c.cmd, req); err != nil {
		return err
	}
	p, err := c.readPacket(c.cmd)
	if err != nil {
		return err
	}
	switch v := p.(type) {
	case InitCommandAck:
		c.responder = v
		return nil
	case InitFail:
		return v.Err()
	}
	return &TypeError{Want: PT_InitCommandAck, Got: p.Type()}
}

func (c *Conn) initEvent() error {
	defer c.deadline(c.evt)()
	if err := c.writePacket(c.evt, InitEventRequest{ConnectionNumber: c.responder.ConnectionNumber}); err != nil {
		return err
	}
	p, err := c.readPacket(c.evt)
	if err != nil {
		return err
	}
	switch v := p.(type) {
	case InitEventAck:
		return nil
	case InitFail:
		return v.Err()
	}
	return &TypeError{Want: PT_InitEventAck, Got: p.Type()}
}

// Responder returns the responder's InitCommandAck.
func (c *Conn) Responder() InitCommandAck {
	return c.responder
}

// DataRate returns the data phase throughput in bytes per second.
func (c *Conn) DataRate() int64 {
	return c.rate.Rate()
}

// SessionID returns the open session, or zero.
func (c *Conn) SessionID() ptp.UINT32 {
	return ptp.UINT32(c.sid.Load())
}

// rateWriter counts bytes of a data phase.
type rateWriter struct {
	w io.Writer
	c *Conn
}

func (r *rateWriter) Write(b []byte) (int, error) {
	n, err := r.w.Write(b)
	r.c.rate.Incr(int64(n))
	r.c.config.Metrics.data("in", n)
	if r.c.config.Debug.Data {
		r.c.log.Data.Debugf("recv 0x%x bytes:\n%s", n, hex.Dump(b[:n]))
	}
	return n, err
}

type rateReader struct {
	r io.Reader
	c *Conn
}

func (r *rateReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	r.c.rate.Incr(int64(n))
	r.c.config.Metrics.data("out", n)
	if r.c.config.Debug.Data && n > 0 {
		r.c.log.Data.Debugf("send 0x%x bytes:\n%s", n, hex.Dump(b[:n]))
	}
	return n, err
}

// RunTransaction executes one operation. Data the responder sends goes
// to dest; if src is non-nil, writeSize bytes of it are sent as the
// data phase. rep receives the response; a response code other than
// RC_OK is returned as ptp.RCError.
func (c *Conn) RunTransaction(req *ptp.Container, rep *ptp.Container,
	dest io.Writer, src io.Reader, writeSize int64) error {
	if len(req.Param) > ptp.MaxParams {
		return fmt.Errorf("ptpip: %d parameters, at most %d", len(req.Param), ptp.MaxParams)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.deadline(c.cmd)()

	var tid ptp.UINT32
	if sid := c.sid.Load(); sid != 0 {
		req.SessionID = ptp.UINT32(sid)
		tid = ptp.UINT32(c.tid.Inc())
	}
	req.TransactionID = tid

	opName := ptp.CodeName(ptp.OC_names, req.Code)
	c.log.PTPIP.Debugf("request %s %v", opName, req.Param)

	phase := ptp.UINT32(DataPhaseIn)
	if src != nil {
		phase = DataPhaseOut
	}
	if err := c.writePacket(c.cmd, NewOperationRequest(phase, req.Code, tid, req.Param...)); err != nil {
		return err
	}

	if src != nil {
		n, err := WriteData(c.cmd, tid, &rateReader{src, c}, writeSize, c.config.ChunkSize)
		if err != nil {
			return err
		}
		c.log.Data.Debugf("sent data 0x%x bytes", n)
	}

	var unexpectedData bool
	if dest == nil {
		dest = &NullWriter{}
		unexpectedData = true
	}
	var recv DataReceiver
	recv.Expect(&rateWriter{dest, c})
	var sawData bool
	var cancelled error

	var resp OperationResponse
	for {
		p, err := c.readPacket(c.cmd)
		if err != nil {
			return err
		}
		if r, ok := p.(OperationResponse); ok {
			if recv.Active() {
				return SyncError(fmt.Sprintf("response during data phase of transaction %v", recv.TransactionID()))
			}
			resp = r
			break
		}
		if _, ok := p.(StartData); ok {
			sawData = true
			if unexpectedData {
				c.log.PTPIP.Debugf("discarding unexpected data for %s", opName)
			}
		}
		if _, err := recv.Handle(p); err != nil {
			if _, ok := err.(*CancelledError); !ok {
				return err
			}
			// the responder still sends a response.
			cancelled = err
		}
	}

	rep.Code = resp.ResponseCode
	rep.SessionID = req.SessionID
	rep.TransactionID = resp.TransactionID
	rep.Param = []ptp.UINT32{resp.P1, resp.P2, resp.P3, resp.P4, resp.P5}

	rcName := ptp.CodeName(ptp.RC_names, rep.Code)
	c.log.PTPIP.Debugf("response %s %v", rcName, rep.Param)
	c.config.Metrics.transaction(opName, rcName)

	if cancelled != nil {
		return cancelled
	}
	if unexpectedData && sawData {
		return SyncError(fmt.Sprintf("unexpected data for code %s", opName))
	}
	if rep.TransactionID != tid {
		return SyncError(fmt.Sprintf("transaction ID mismatch got %x want %x",
			uint32(rep.TransactionID), uint32(tid)))
	}
	if rep.Code != ptp.RC_OK {
		return ptp.RCError(rep.Code)
	}
	return nil
}

// ServeEvents reads the event connection until ctx is done or an error
// occurs, calling fn for each event. Probe requests are answered.
func (c *Conn) ServeEvents(ctx context.Context, fn func(Event)) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-egCtx.Done()
		c.evt.SetReadDeadline(time.Now())
		return nil
	})
	eg.Go(func() error {
		for {
			p, err := c.readPacket(c.evt)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			switch v := p.(type) {
			case Event:
				c.config.Metrics.event(ptp.CodeName(ptp.EC_names, v.EventCode))
				fn(v)
			case ProbeRequest:
				if err := c.Probe(); err != nil {
					return err
				}
			case ProbeResponse:
			default:
				return SyncError(fmt.Sprintf("unexpected %v on event connection", p.Type()))
			}
		}
	})
	err := eg.Wait()
	c.evt.SetReadDeadline(time.Time{})
	return err
}

// Probe answers a liveness probe on the event connection.
func (c *Conn) Probe() error {
	c.evtMu.Lock()
	defer c.evtMu.Unlock()
	return c.writePacket(c.evt, ProbeResponse{})
}

func (c *Conn) closeConns() error {
	var result error
	if c.evt != nil {
		if err := c.evt.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := c.cmd.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}

// Close closes an open session and both connections.
func (c *Conn) Close() error {
	var result error
	if c.sid.Load() != 0 {
		if err := c.CloseSession(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := c.closeConns(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}

func (c *Conn) String() string {
	return fmt.Sprintf("ptpip %s -> %s (%q)", c.cmd.LocalAddr(), c.cmd.RemoteAddr(), c.responder.Name)
}
