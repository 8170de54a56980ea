package ptpip

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/hanwen/go-ptpip/ptp"
)

// DefaultChunkSize is the payload size WriteData uses for Data packets.
const DefaultChunkSize = 0x10000

type NullWriter struct{}

func (nw *NullWriter) Write(dest []byte) (n int, err error) {
	return len(dest), nil
}

var _ = (io.Writer)((*NullWriter)(nil))

// DataReceiver tracks one incoming data phase: StartData, any number
// of Data packets, then EndData or Cancel. It is owned by the reader
// of the command connection and not safe for concurrent use.
type DataReceiver struct {
	active   bool
	tid      ptp.UINT32
	total    ptp.UINT64
	received uint64
	dest     io.Writer
	next     io.Writer
}

// Expect sets where the data of the next StartData seen by Handle goes.
func (d *DataReceiver) Expect(dest io.Writer) {
	d.next = dest
}

// Active reports whether a data phase is in progress.
func (d *DataReceiver) Active() bool {
	return d.active
}

// TransactionID returns the transaction of the active data phase.
func (d *DataReceiver) TransactionID() ptp.UINT32 {
	return d.tid
}

// Received returns the number of bytes delivered so far.
func (d *DataReceiver) Received() uint64 {
	return d.received
}

// Total returns the announced size of the active data phase.
func (d *DataReceiver) Total() ptp.UINT64 {
	return d.total
}

func (d *DataReceiver) reset() {
	*d = DataReceiver{}
}

// Start begins a data phase; its bytes go to dest, or are discarded if
// dest is nil.
func (d *DataReceiver) Start(p StartData, dest io.Writer) error {
	if d.active {
		return SyncError(fmt.Sprintf("StartData for transaction %v while %v is active", p.TransactionID, d.tid))
	}
	if dest == nil {
		dest = &NullWriter{}
	}
	*d = DataReceiver{
		active: true,
		tid:    p.TransactionID,
		total:  p.TotalDataLength,
		dest:   dest,
	}
	return nil
}

// accept abandons the data phase when the chunk overruns it or cannot
// be written.
func (d *DataReceiver) accept(tid ptp.UINT32, chunk []byte, what string) error {
	if !d.active {
		return SyncError(fmt.Sprintf("%s for transaction %v without StartData", what, tid))
	}
	if tid != d.tid {
		return SyncError(fmt.Sprintf("%s for transaction %v, want %v", what, tid, d.tid))
	}
	n := d.received + uint64(len(chunk))
	if d.total != UnknownDataLength && n > uint64(d.total) {
		total := d.total
		d.reset()
		return SyncError(fmt.Sprintf("%s overruns transfer: %d bytes, announced %d", what, n, uint64(total)))
	}
	if _, err := d.dest.Write(chunk); err != nil {
		d.reset()
		return errors.Wrapf(err, "writing data for transaction %v", tid)
	}
	d.received = n
	return nil
}

// Data appends a chunk to the active data phase.
func (d *DataReceiver) Data(p Data) error {
	return d.accept(p.TransactionID, p.Chunk, "Data")
}

// End appends the final chunk and completes the data phase. It
// returns the number of bytes received.
func (d *DataReceiver) End(p EndData) (uint64, error) {
	if err := d.accept(p.TransactionID, p.Chunk, "EndData"); err != nil {
		return 0, err
	}
	n := d.received
	if d.total != UnknownDataLength && n != uint64(d.total) {
		total := d.total
		d.reset()
		return n, SyncError(fmt.Sprintf("EndData after %d bytes, announced %d", n, uint64(total)))
	}
	d.reset()
	return n, nil
}

// Cancel aborts the active data phase and discards its state. The
// result is a *CancelledError for the active transaction.
func (d *DataReceiver) Cancel(p Cancel) error {
	if !d.active || p.TransactionID != d.tid {
		return SyncError(fmt.Sprintf("Cancel for transaction %v, not active", p.TransactionID))
	}
	d.reset()
	return &CancelledError{TransactionID: p.TransactionID}
}

// Handle dispatches a data phase packet. done is set once EndData
// completed the transfer.
func (d *DataReceiver) Handle(p Packet) (done bool, err error) {
	switch v := p.(type) {
	case StartData:
		return false, d.Start(v, d.next)
	case Data:
		return false, d.Data(v)
	case EndData:
		_, err := d.End(v)
		return err == nil, err
	case Cancel:
		return false, d.Cancel(v)
	}
	return false, SyncError(fmt.Sprintf("unexpected %v during data phase", p.Type()))
}

// WriteData sends src as the data phase of transaction tid: StartData,
// Data packets of at most chunk bytes, and EndData carrying the last
// chunk. A negative size announces UnknownDataLength.
func WriteData(w io.Writer, tid ptp.UINT32, src io.Reader, size int64, chunk int) (int64, error) {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	total := ptp.UINT64(UnknownDataLength)
	if size >= 0 {
		total = ptp.UINT64(size)
		src = io.LimitReader(src, size)
	}
	if err := WritePacket(w, StartData{TransactionID: tid, TotalDataLength: total}); err != nil {
		return 0, err
	}

	cur := make([]byte, chunk)
	next := make([]byte, chunk)
	var pending []byte
	var sent int64
	for {
		n, err := io.ReadFull(src, next)
		if n > 0 {
			if pending != nil {
				if err := WritePacket(w, Data{TransactionID: tid, Chunk: pending}); err != nil {
					return sent, err
				}
				sent += int64(len(pending))
			}
			cur, next = next, cur
			pending = cur[:n]
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return sent, err
		}
	}

	if err := WritePacket(w, EndData{TransactionID: tid, Chunk: pending}); err != nil {
		return sent, err
	}
	sent += int64(len(pending))
	if size >= 0 && sent != size {
		return sent, fmt.Errorf("ptpip: sent %d bytes, announced %d", sent, size)
	}
	return sent, nil
}
