package ptpip

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hanwen/go-ptpip/ptp"
)

func TestReceiverSequence(t *testing.T) {
	var got bytes.Buffer
	var d DataReceiver
	d.Expect(&got)

	done, err := d.Handle(StartData{TransactionID: 4, TotalDataLength: 5})
	require.NoError(t, err)
	require.False(t, done)
	require.True(t, d.Active())
	require.Equal(t, ptp.UINT32(4), d.TransactionID())

	_, err = d.Handle(Data{TransactionID: 4, Chunk: []byte("abc")})
	require.NoError(t, err)
	require.Equal(t, uint64(3), d.Received())

	done, err = d.Handle(EndData{TransactionID: 4, Chunk: []byte("de")})
	require.NoError(t, err)
	require.True(t, done)
	require.False(t, d.Active())
	require.Equal(t, "abcde", got.String())
}

func TestReceiverWrongTransaction(t *testing.T) {
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 4, TotalDataLength: 5}, nil))
	err := d.Data(Data{TransactionID: 5, Chunk: []byte("x")})
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
}

func TestReceiverWithoutStart(t *testing.T) {
	var d DataReceiver
	err := d.Data(Data{TransactionID: 1})
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)

	_, err = d.End(EndData{TransactionID: 1})
	require.True(t, errors.As(err, &se), "%v", err)
}

func TestReceiverDoubleStart(t *testing.T) {
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 1, TotalDataLength: 1}, nil))
	err := d.Start(StartData{TransactionID: 2, TotalDataLength: 1}, nil)
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
}

func TestReceiverOverrun(t *testing.T) {
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 1, TotalDataLength: 2}, nil))
	err := d.Data(Data{TransactionID: 1, Chunk: []byte("abc")})
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
	require.Equal(t, uint64(0), d.Received())
	require.False(t, d.Active())
	require.NoError(t, d.Start(StartData{TransactionID: 2, TotalDataLength: 1}, nil))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReceiverWriteError(t *testing.T) {
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 1, TotalDataLength: 4}, failWriter{}))
	err := d.Data(Data{TransactionID: 1, Chunk: []byte("ab")})
	require.ErrorContains(t, err, "disk full")
	require.False(t, d.Active())
	require.NoError(t, d.Start(StartData{TransactionID: 2, TotalDataLength: 1}, nil))
}

func TestReceiverShort(t *testing.T) {
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 1, TotalDataLength: 4}, nil))
	n, err := d.End(EndData{TransactionID: 1, Chunk: []byte("ab")})
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
	require.Equal(t, uint64(2), n)
	require.False(t, d.Active())
}

func TestReceiverUnknownLength(t *testing.T) {
	var got bytes.Buffer
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 1, TotalDataLength: UnknownDataLength}, &got))
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Data(Data{TransactionID: 1, Chunk: bytes.Repeat([]byte{'x'}, 100)}))
	}
	n, err := d.End(EndData{TransactionID: 1})
	require.NoError(t, err)
	require.Equal(t, uint64(300), n)
	require.Equal(t, 300, got.Len())
}

func TestReceiverCancel(t *testing.T) {
	var d DataReceiver
	require.NoError(t, d.Start(StartData{TransactionID: 7, TotalDataLength: 10}, nil))
	require.NoError(t, d.Data(Data{TransactionID: 7, Chunk: []byte("abc")}))

	_, err := d.Handle(Cancel{TransactionID: 7})
	var ce *CancelledError
	require.True(t, errors.As(err, &ce), "%v", err)
	require.Equal(t, ptp.UINT32(7), ce.TransactionID)
	require.False(t, d.Active())

	// nothing left to cancel.
	err = d.Cancel(Cancel{TransactionID: 7})
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
}

func TestReceiverUnexpectedPacket(t *testing.T) {
	var d DataReceiver
	_, err := d.Handle(Event{})
	var se SyncError
	require.True(t, errors.As(err, &se), "%v", err)
}

func readAll(t *testing.T, b []byte) []Packet {
	t.Helper()
	r := bytes.NewReader(b)
	var ps []Packet
	for r.Len() > 0 {
		p, err := ReadPacket(r, DefaultLimits())
		require.NoError(t, err)
		ps = append(ps, p)
	}
	return ps
}

func TestWriteDataChunks(t *testing.T) {
	src := bytes.Repeat([]byte("0123456789"), 25)
	var buf bytes.Buffer
	n, err := WriteData(&buf, 3, bytes.NewReader(src), int64(len(src)), 100)
	require.NoError(t, err)
	require.Equal(t, int64(len(src)), n)

	ps := readAll(t, buf.Bytes())
	require.Len(t, ps, 4)
	require.Equal(t, StartData{TransactionID: 3, TotalDataLength: 250}, ps[0])
	require.Len(t, ps[1].(Data).Chunk, 100)
	require.Len(t, ps[2].(Data).Chunk, 100)
	require.Len(t, ps[3].(EndData).Chunk, 50)

	var got bytes.Buffer
	var d DataReceiver
	d.Expect(&got)
	for i, p := range ps {
		done, err := d.Handle(p)
		require.NoError(t, err)
		require.Equal(t, i == len(ps)-1, done)
	}
	require.Equal(t, src, got.Bytes())
}

func TestWriteDataExactMultiple(t *testing.T) {
	src := bytes.Repeat([]byte{1}, 200)
	var buf bytes.Buffer
	_, err := WriteData(&buf, 3, bytes.NewReader(src), 200, 100)
	require.NoError(t, err)

	// the last full chunk travels in EndData.
	ps := readAll(t, buf.Bytes())
	require.Len(t, ps, 3)
	require.Len(t, ps[2].(EndData).Chunk, 100)
}

func TestWriteDataEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteData(&buf, 3, bytes.NewReader(nil), 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)

	ps := readAll(t, buf.Bytes())
	require.Len(t, ps, 2)
	require.Empty(t, ps[1].(EndData).Chunk)
}

func TestWriteDataUnknownSize(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteData(&buf, 3, bytes.NewReader([]byte("hello")), -1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)

	ps := readAll(t, buf.Bytes())
	require.True(t, ps[0].(StartData).UnknownLength())
	require.Len(t, ps, 4)
}

func TestWriteDataShortSource(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteData(&buf, 3, bytes.NewReader([]byte("abc")), 10, 0)
	require.Error(t, err)
	require.Equal(t, int64(3), n)
}
