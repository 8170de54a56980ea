// Package ptp defines the data types of the Picture Transfer Protocol
// (ISO 15740): fixed-width integers, strings, arrays and the data sets
// exchanged with a device, together with a reflective codec that reads
// and writes them in wire order.
package ptp

import (
	"fmt"
	"io"
)

// Container is the data type for sending/receiving PTP requests and
// responses, independent of the transport.
type Container struct {
	Code          UINT16
	SessionID     UINT32
	TransactionID UINT32
	Param         []UINT32
}

// MaxParams is the number of parameters a request or response can carry.
const MaxParams = 5

// Response is the response data set: a response code, the session and
// transaction it belongs to and up to five parameters. Unused
// parameters are zero.
type Response struct {
	ResponseCode  UINT16
	SessionID     UINT32
	TransactionID UINT32
	P1            UINT32
	P2            UINT32
	P3            UINT32
	P4            UINT32
	P5            UINT32
}

// Params returns the five parameters in order.
func (r *Response) Params() [MaxParams]UINT32 {
	return [MaxParams]UINT32{r.P1, r.P2, r.P3, r.P4, r.P5}
}

// Err returns an RCError unless the code is RC_OK.
func (r *Response) Err() error {
	if r.ResponseCode != RC_OK {
		return RCError(r.ResponseCode)
	}
	return nil
}

type DeviceInfo struct {
	StandardVersion           UINT16
	VendorExtensionID         UINT32
	VendorExtensionVersion    UINT16
	VendorExtensionDesc       string
	FunctionalMode            UINT16
	OperationsSupported       []UINT16
	EventsSupported           []UINT16
	DevicePropertiesSupported []UINT16
	CaptureFormats            []UINT16
	ImageFormats              []UINT16
	Manufacturer              string
	Model                     string
	DeviceVersion             string
	SerialNumber              string
}

// DataTypeSelector is the special type to indicate the actual type of
// fields of DataDependentType.
type DataTypeSelector UINT16
type DataDependentType interface{}

// The Decoder interface is for types that need special decoding
// support, eg. the ones using DataDependentType.
type Decoder interface {
	Decode(r io.Reader) error
}

type Encoder interface {
	Encode(w io.Writer) error
}

type PropDescRangeForm struct {
	MinimumValue DataDependentType
	MaximumValue DataDependentType
	StepSize     DataDependentType
}

type PropDescEnumForm struct {
	Values []DataDependentType
}

// PropGetSet says whether a property is writable.
type PropGetSet UINT8

func (g PropGetSet) Valid() bool {
	return g == DPGS_Get || g == DPGS_GetSet
}

// PropFormFlag selects the form that follows a DevicePropDesc.
type PropFormFlag UINT8

func (f PropFormFlag) Valid() bool {
	return f == DPFF_None || f == DPFF_Range || f == DPFF_Enumeration
}

type DevicePropDescFixed struct {
	DevicePropertyCode  UINT16
	DataType            DataTypeSelector
	GetSet              PropGetSet
	FactoryDefaultValue DataDependentType
	CurrentValue        DataDependentType
	FormFlag            PropFormFlag
}

// DevicePropDesc describes a device property. Form is nil,
// *PropDescRangeForm or *PropDescEnumForm depending on FormFlag.
type DevicePropDesc struct {
	DevicePropDescFixed
	Form interface{}
}

type Uint32Array struct {
	Values []UINT32
}

type Uint16Array struct {
	Values []UINT16
}

type StorageInfo struct {
	StorageType        UINT16
	FilesystemType     UINT16
	AccessCapability   UINT16
	MaxCapability      UINT64
	FreeSpaceInBytes   UINT64
	FreeSpaceInImages  UINT32
	StorageDescription string
	VolumeLabel        string
}

func (d *StorageInfo) IsHierarchical() bool {
	return d.FilesystemType == FST_GenericHierarchical
}

func (d *StorageInfo) IsRemovable() bool {
	return (d.StorageType == ST_RemovableROM ||
		d.StorageType == ST_RemovableRAM)
}

// ProtectionStatus is the write protection of an object.
type ProtectionStatus UINT16

const (
	NoProtection ProtectionStatus = PS_NoProtection
	ReadOnly     ProtectionStatus = PS_ReadOnly
)

func (p ProtectionStatus) Valid() bool {
	return p == NoProtection || p == ReadOnly
}

func (p ProtectionStatus) String() string {
	if n, ok := PS_names[int(p)]; ok {
		return n
	}
	return fmt.Sprintf("0x%04x", uint16(p))
}

// ObjectInfo is the data set describing an object on the device.
// Dates are kept as sent; see CaptureTime and ModificationTime.
type ObjectInfo struct {
	StorageID           UINT32
	ObjectFormat        UINT16
	ProtectionStatus    ProtectionStatus
	CompressedSize      UINT32
	ThumbFormat         UINT16
	ThumbCompressedSize UINT32
	ThumbPixWidth       UINT32
	ThumbPixHeight      UINT32
	ImagePixWidth       UINT32
	ImagePixHeight      UINT32
	ImageBitDepth       UINT32
	ParentObject        UINT32
	AssociationType     UINT16
	AssociationDesc     UINT32
	SequenceNumber      UINT32
	Filename            string
	CaptureDate         string
	ModificationDate    string
	Keywords            string
}

func (o *ObjectInfo) IsAssociation() bool {
	return o.ObjectFormat == OFC_Association
}
