package ptpip

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/hanwen/go-ptpip/ptp"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

// RunTransactionWithNoParams runs an operation without parameters or
// data.
func (c *Conn) RunTransactionWithNoParams(code ptp.UINT16) error {
	var req, rep ptp.Container
	req.Code = code
	return c.RunTransaction(&req, &rep, nil, nil, 0)
}

// OpenSession opens a session; storage and object operations need
// one. Transaction ids restart at 1 within the session.
func (c *Conn) OpenSession() error {
	if c.sid.Load() != 0 {
		return fmt.Errorf("session already open")
	}
	var req, rep ptp.Container
	req.Code = ptp.OC_OpenSession

	// never 0, which means "no session".
	sid := uint32(rand.Int31()) | 1
	req.Param = []ptp.UINT32{ptp.UINT32(sid)}
	if err := c.RunTransaction(&req, &rep, nil, nil, 0); err != nil {
		return err
	}

	c.tid.Store(0)
	c.sid.Store(sid)
	return nil
}

// CloseSession closes the session. This is done automatically if the
// connection is closed.
func (c *Conn) CloseSession() error {
	var req, rep ptp.Container
	req.Code = ptp.OC_CloseSession
	err := c.RunTransaction(&req, &rep, nil, nil, 0)
	c.sid.Store(0)
	return err
}

// getData runs an operation whose data phase is decoded into dest.
func (c *Conn) getData(code ptp.UINT16, dest interface{}, params ...ptp.UINT32) error {
	var req, rep ptp.Container
	req.Code = code
	req.Param = params
	var buf bytes.Buffer
	if err := c.RunTransaction(&req, &rep, &buf, nil, 0); err != nil {
		return err
	}
	return ptp.Decode(&buf, dest)
}

// sendData runs an operation with src encoded as its data phase.
func (c *Conn) sendData(code ptp.UINT16, src interface{}, params ...ptp.UINT32) (*ptp.Container, error) {
	var buf bytes.Buffer
	if err := ptp.Encode(&buf, src); err != nil {
		return nil, err
	}
	var req, rep ptp.Container
	req.Code = code
	req.Param = params
	err := c.RunTransaction(&req, &rep, nil, &buf, int64(buf.Len()))
	return &rep, err
}

func (c *Conn) GetDeviceInfo(info *ptp.DeviceInfo) error {
	return c.getData(ptp.OC_GetDeviceInfo, info)
}

func (c *Conn) GetStorageIDs(info *ptp.Uint32Array) error {
	return c.getData(ptp.OC_GetStorageIDs, info)
}

func (c *Conn) GetStorageInfo(ID ptp.UINT32, info *ptp.StorageInfo) error {
	return c.getData(ptp.OC_GetStorageInfo, info, ID)
}

func (c *Conn) GetNumObjects(storageID, objFormatCode, parent ptp.UINT32) (ptp.UINT32, error) {
	var req, rep ptp.Container
	req.Code = ptp.OC_GetNumObjects
	req.Param = []ptp.UINT32{storageID, objFormatCode, parent}
	if err := c.RunTransaction(&req, &rep, nil, nil, 0); err != nil {
		return 0, err
	}
	return rep.Param[0], nil
}

func (c *Conn) GetObjectHandles(storageID, objFormatCode, parent ptp.UINT32, info *ptp.Uint32Array) error {
	return c.getData(ptp.OC_GetObjectHandles, info, storageID, objFormatCode, parent)
}

func (c *Conn) GetObjectInfo(handle ptp.UINT32, info *ptp.ObjectInfo) error {
	return c.getData(ptp.OC_GetObjectInfo, info, handle)
}

// GetObject streams the object's data to w.
func (c *Conn) GetObject(handle ptp.UINT32, w io.Writer) error {
	var req, rep ptp.Container
	req.Code = ptp.OC_GetObject
	req.Param = []ptp.UINT32{handle}
	return c.RunTransaction(&req, &rep, w, nil, 0)
}

func (c *Conn) GetThumb(handle ptp.UINT32, w io.Writer) error {
	var req, rep ptp.Container
	req.Code = ptp.OC_GetThumb
	req.Param = []ptp.UINT32{handle}
	return c.RunTransaction(&req, &rep, w, nil, 0)
}

// GetPartialObject streams size bytes from offset. It returns the
// number of bytes the responder sent.
func (c *Conn) GetPartialObject(handle, offset, size ptp.UINT32, w io.Writer) (ptp.UINT32, error) {
	var req, rep ptp.Container
	req.Code = ptp.OC_GetPartialObject
	req.Param = []ptp.UINT32{handle, offset, size}
	if err := c.RunTransaction(&req, &rep, w, nil, 0); err != nil {
		return 0, err
	}
	return rep.Param[0], nil
}

func (c *Conn) DeleteObject(handle ptp.UINT32) error {
	var req, rep ptp.Container
	req.Code = ptp.OC_DeleteObject
	req.Param = []ptp.UINT32{handle, 0}
	return c.RunTransaction(&req, &rep, nil, nil, 0)
}

// SendObjectInfo announces a new object. It returns the storage,
// parent and handle the responder chose.
func (c *Conn) SendObjectInfo(storageID, parent ptp.UINT32, info *ptp.ObjectInfo) (ptp.UINT32, ptp.UINT32, ptp.UINT32, error) {
	rep, err := c.sendData(ptp.OC_SendObjectInfo, info, storageID, parent)
	if err != nil {
		return 0, 0, 0, err
	}
	return rep.Param[0], rep.Param[1], rep.Param[2], nil
}

// SendObject sends the data of the object announced by SendObjectInfo.
func (c *Conn) SendObject(r io.Reader, size int64) error {
	var req, rep ptp.Container
	req.Code = ptp.OC_SendObject
	return c.RunTransaction(&req, &rep, nil, r, size)
}

func (c *Conn) GetDevicePropDesc(propCode ptp.UINT16, info *ptp.DevicePropDesc) error {
	return c.getData(ptp.OC_GetDevicePropDesc, info, ptp.UINT32(propCode))
}

func (c *Conn) GetDevicePropValue(propCode ptp.UINT16, dest interface{}) error {
	return c.getData(ptp.OC_GetDevicePropValue, dest, ptp.UINT32(propCode))
}

func (c *Conn) SetDevicePropValue(propCode ptp.UINT16, src interface{}) error {
	_, err := c.sendData(ptp.OC_SetDevicePropValue, src, ptp.UINT32(propCode))
	return err
}

func (c *Conn) ResetDevicePropValue(propCode ptp.UINT16) error {
	var req, rep ptp.Container
	req.Code = ptp.OC_ResetDevicePropValue
	req.Param = []ptp.UINT32{ptp.UINT32(propCode)}
	return c.RunTransaction(&req, &rep, nil, nil, 0)
}

// InitiateCapture triggers a capture into storageID (0 lets the
// responder choose).
func (c *Conn) InitiateCapture(storageID, objFormatCode ptp.UINT32) error {
	var req, rep ptp.Container
	req.Code = ptp.OC_InitiateCapture
	req.Param = []ptp.UINT32{storageID, objFormatCode}
	return c.RunTransaction(&req, &rep, nil, nil, 0)
}
