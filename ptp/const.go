package ptp

// Code tables for the PTP (ISO 15740) standard set. Vendor extensions
// are not listed; unknown codes print as hex.

// access capability
const (
	AC_ReadWrite                     = 0x0000
	AC_ReadOnly                      = 0x0001
	AC_ReadOnly_with_Object_Deletion = 0x0002
)

var AC_names = map[int]string{
	0x0000: "ReadWrite",
	0x0001: "ReadOnly",
	0x0002: "ReadOnly_with_Object_Deletion",
}

// association type
const (
	AT_Undefined           = 0x0000
	AT_GenericFolder       = 0x0001
	AT_Album               = 0x0002
	AT_TimeSequence        = 0x0003
	AT_HorizontalPanoramic = 0x0004
	AT_VerticalPanoramic   = 0x0005
	AT_2DPanoramic         = 0x0006
	AT_AncillaryData       = 0x0007
)

var AT_names = map[int]string{
	0x0000: "Undefined",
	0x0001: "GenericFolder",
	0x0002: "Album",
	0x0003: "TimeSequence",
	0x0004: "HorizontalPanoramic",
	0x0005: "VerticalPanoramic",
	0x0006: "2DPanoramic",
	0x0007: "AncillaryData",
}

// device property code
const (
	DPC_Undefined                = 0x5000
	DPC_BatteryLevel             = 0x5001
	DPC_FunctionalMode           = 0x5002
	DPC_ImageSize                = 0x5003
	DPC_CompressionSetting       = 0x5004
	DPC_WhiteBalance             = 0x5005
	DPC_RGBGain                  = 0x5006
	DPC_FNumber                  = 0x5007
	DPC_FocalLength              = 0x5008
	DPC_FocusDistance            = 0x5009
	DPC_FocusMode                = 0x500A
	DPC_ExposureMeteringMode     = 0x500B
	DPC_FlashMode                = 0x500C
	DPC_ExposureTime             = 0x500D
	DPC_ExposureProgramMode      = 0x500E
	DPC_ExposureIndex            = 0x500F
	DPC_ExposureBiasCompensation = 0x5010
	DPC_DateTime                 = 0x5011
	DPC_CaptureDelay             = 0x5012
	DPC_StillCaptureMode         = 0x5013
	DPC_Contrast                 = 0x5014
	DPC_Sharpness                = 0x5015
	DPC_DigitalZoom              = 0x5016
	DPC_EffectMode               = 0x5017
	DPC_BurstNumber              = 0x5018
	DPC_BurstInterval            = 0x5019
	DPC_TimelapseNumber          = 0x501A
	DPC_TimelapseInterval        = 0x501B
	DPC_FocusMeteringMode        = 0x501C
	DPC_UploadURL                = 0x501D
	DPC_Artist                   = 0x501E
	DPC_CopyrightInfo            = 0x501F
)

var DPC_names = map[int]string{
	0x5000: "Undefined",
	0x5001: "BatteryLevel",
	0x5002: "FunctionalMode",
	0x5003: "ImageSize",
	0x5004: "CompressionSetting",
	0x5005: "WhiteBalance",
	0x5006: "RGBGain",
	0x5007: "FNumber",
	0x5008: "FocalLength",
	0x5009: "FocusDistance",
	0x500A: "FocusMode",
	0x500B: "ExposureMeteringMode",
	0x500C: "FlashMode",
	0x500D: "ExposureTime",
	0x500E: "ExposureProgramMode",
	0x500F: "ExposureIndex",
	0x5010: "ExposureBiasCompensation",
	0x5011: "DateTime",
	0x5012: "CaptureDelay",
	0x5013: "StillCaptureMode",
	0x5014: "Contrast",
	0x5015: "Sharpness",
	0x5016: "DigitalZoom",
	0x5017: "EffectMode",
	0x5018: "BurstNumber",
	0x5019: "BurstInterval",
	0x501A: "TimelapseNumber",
	0x501B: "TimelapseInterval",
	0x501C: "FocusMeteringMode",
	0x501D: "UploadURL",
	0x501E: "Artist",
	0x501F: "CopyrightInfo",
}

// device property form flag
const (
	DPFF_None        = 0x00
	DPFF_Range       = 0x01
	DPFF_Enumeration = 0x02
)

var DPFF_names = map[int]string{
	0x00: "None",
	0x01: "Range",
	0x02: "Enumeration",
}

// device property get/set
const (
	DPGS_Get    = 0x00
	DPGS_GetSet = 0x01
)

var DPGS_names = map[int]string{
	0x00: "Get",
	0x01: "GetSet",
}

// data type code
const (
	DTC_UNDEF      = 0x0000
	DTC_INT8       = 0x0001
	DTC_UINT8      = 0x0002
	DTC_INT16      = 0x0003
	DTC_UINT16     = 0x0004
	DTC_INT32      = 0x0005
	DTC_UINT32     = 0x0006
	DTC_INT64      = 0x0007
	DTC_UINT64     = 0x0008
	DTC_INT128     = 0x0009
	DTC_UINT128    = 0x000A
	DTC_ARRAY_MASK = 0x4000
	DTC_STR        = 0xFFFF
)

var DTC_names = map[int]string{
	0x0000: "UNDEF",
	0x0001: "INT8",
	0x0002: "UINT8",
	0x0003: "INT16",
	0x0004: "UINT16",
	0x0005: "INT32",
	0x0006: "UINT32",
	0x0007: "INT64",
	0x0008: "UINT64",
	0x0009: "INT128",
	0x000A: "UINT128",
	0x4000: "ARRAY_MASK",
	0xFFFF: "STR",
}

// event code
const (
	EC_Undefined             = 0x4000
	EC_CancelTransaction     = 0x4001
	EC_ObjectAdded           = 0x4002
	EC_ObjectRemoved         = 0x4003
	EC_StoreAdded            = 0x4004
	EC_StoreRemoved          = 0x4005
	EC_DevicePropChanged     = 0x4006
	EC_ObjectInfoChanged     = 0x4007
	EC_DeviceInfoChanged     = 0x4008
	EC_RequestObjectTransfer = 0x4009
	EC_StoreFull             = 0x400A
	EC_DeviceReset           = 0x400B
	EC_StorageInfoChanged    = 0x400C
	EC_CaptureComplete       = 0x400D
	EC_UnreportedStatus      = 0x400E
)

var EC_names = map[int]string{
	0x4000: "Undefined",
	0x4001: "CancelTransaction",
	0x4002: "ObjectAdded",
	0x4003: "ObjectRemoved",
	0x4004: "StoreAdded",
	0x4005: "StoreRemoved",
	0x4006: "DevicePropChanged",
	0x4007: "ObjectInfoChanged",
	0x4008: "DeviceInfoChanged",
	0x4009: "RequestObjectTransfer",
	0x400A: "StoreFull",
	0x400B: "DeviceReset",
	0x400C: "StorageInfoChanged",
	0x400D: "CaptureComplete",
	0x400E: "UnreportedStatus",
}

// filesystem type
const (
	FST_Undefined           = 0x0000
	FST_GenericFlat         = 0x0001
	FST_GenericHierarchical = 0x0002
	FST_DCF                 = 0x0003
)

var FST_names = map[int]string{
	0x0000: "Undefined",
	0x0001: "GenericFlat",
	0x0002: "GenericHierarchical",
	0x0003: "DCF",
}

// get object handles
const (
	GOH_ALL_ASSOCS  = 0x00000000
	GOH_ALL_FORMATS = 0x00000000
	GOH_ALL_STORAGE = 0xffffffff
	GOH_ROOT_PARENT = 0xffffffff
)

// operation code
const (
	OC_Undefined            = 0x1000
	OC_GetDeviceInfo        = 0x1001
	OC_OpenSession          = 0x1002
	OC_CloseSession         = 0x1003
	OC_GetStorageIDs        = 0x1004
	OC_GetStorageInfo       = 0x1005
	OC_GetNumObjects        = 0x1006
	OC_GetObjectHandles     = 0x1007
	OC_GetObjectInfo        = 0x1008
	OC_GetObject            = 0x1009
	OC_GetThumb             = 0x100A
	OC_DeleteObject         = 0x100B
	OC_SendObjectInfo       = 0x100C
	OC_SendObject           = 0x100D
	OC_InitiateCapture      = 0x100E
	OC_FormatStore          = 0x100F
	OC_ResetDevice          = 0x1010
	OC_SelfTest             = 0x1011
	OC_SetObjectProtection  = 0x1012
	OC_PowerDown            = 0x1013
	OC_GetDevicePropDesc    = 0x1014
	OC_GetDevicePropValue   = 0x1015
	OC_SetDevicePropValue   = 0x1016
	OC_ResetDevicePropValue = 0x1017
	OC_TerminateOpenCapture = 0x1018
	OC_MoveObject           = 0x1019
	OC_CopyObject           = 0x101A
	OC_GetPartialObject     = 0x101B
	OC_InitiateOpenCapture  = 0x101C
)

var OC_names = map[int]string{
	0x1000: "Undefined",
	0x1001: "GetDeviceInfo",
	0x1002: "OpenSession",
	0x1003: "CloseSession",
	0x1004: "GetStorageIDs",
	0x1005: "GetStorageInfo",
	0x1006: "GetNumObjects",
	0x1007: "GetObjectHandles",
	0x1008: "GetObjectInfo",
	0x1009: "GetObject",
	0x100A: "GetThumb",
	0x100B: "DeleteObject",
	0x100C: "SendObjectInfo",
	0x100D: "SendObject",
	0x100E: "InitiateCapture",
	0x100F: "FormatStore",
	0x1010: "ResetDevice",
	0x1011: "SelfTest",
	0x1012: "SetObjectProtection",
	0x1013: "PowerDown",
	0x1014: "GetDevicePropDesc",
	0x1015: "GetDevicePropValue",
	0x1016: "SetDevicePropValue",
	0x1017: "ResetDevicePropValue",
	0x1018: "TerminateOpenCapture",
	0x1019: "MoveObject",
	0x101A: "CopyObject",
	0x101B: "GetPartialObject",
	0x101C: "InitiateOpenCapture",
}

// object format code
const (
	OFC_Undefined              = 0x3000
	OFC_Association            = 0x3001
	OFC_Script                 = 0x3002
	OFC_Executable             = 0x3003
	OFC_Text                   = 0x3004
	OFC_HTML                   = 0x3005
	OFC_DPOF                   = 0x3006
	OFC_AIFF                   = 0x3007
	OFC_WAV                    = 0x3008
	OFC_MP3                    = 0x3009
	OFC_AVI                    = 0x300A
	OFC_MPEG                   = 0x300B
	OFC_ASF                    = 0x300C
	OFC_Defined                = 0x3800
	OFC_EXIF_JPEG              = 0x3801
	OFC_TIFF_EP                = 0x3802
	OFC_FlashPix               = 0x3803
	OFC_BMP                    = 0x3804
	OFC_CIFF                   = 0x3805
	OFC_Undefined_0x3806       = 0x3806
	OFC_GIF                    = 0x3807
	OFC_JFIF                   = 0x3808
	OFC_PCD                    = 0x3809
	OFC_PICT                   = 0x380A
	OFC_PNG                    = 0x380B
	OFC_Undefined_0x380C       = 0x380C
	OFC_TIFF                   = 0x380D
	OFC_TIFF_IT                = 0x380E
	OFC_JP2                    = 0x380F
	OFC_JPX                    = 0x3810
)

var OFC_names = map[int]string{
	0x3000: "Undefined",
	0x3001: "Association",
	0x3002: "Script",
	0x3003: "Executable",
	0x3004: "Text",
	0x3005: "HTML",
	0x3006: "DPOF",
	0x3007: "AIFF",
	0x3008: "WAV",
	0x3009: "MP3",
	0x300A: "AVI",
	0x300B: "MPEG",
	0x300C: "ASF",
	0x3800: "Defined",
	0x3801: "EXIF_JPEG",
	0x3802: "TIFF_EP",
	0x3803: "FlashPix",
	0x3804: "BMP",
	0x3805: "CIFF",
	0x3806: "Undefined_0x3806",
	0x3807: "GIF",
	0x3808: "JFIF",
	0x3809: "PCD",
	0x380A: "PICT",
	0x380B: "PNG",
	0x380C: "Undefined_0x380C",
	0x380D: "TIFF",
	0x380E: "TIFF_IT",
	0x380F: "JP2",
	0x3810: "JPX",
}

// protection status
const (
	PS_NoProtection = 0x0000
	PS_ReadOnly     = 0x0001
)

var PS_names = map[int]string{
	0x0000: "NoProtection",
	0x0001: "ReadOnly",
}

// return code
const (
	RC_Undefined                             = 0x2000
	RC_OK                                    = 0x2001
	RC_GeneralError                          = 0x2002
	RC_SessionNotOpen                        = 0x2003
	RC_InvalidTransactionID                  = 0x2004
	RC_OperationNotSupported                 = 0x2005
	RC_ParameterNotSupported                 = 0x2006
	RC_IncompleteTransfer                    = 0x2007
	RC_InvalidStorageId                      = 0x2008
	RC_InvalidObjectHandle                   = 0x2009
	RC_DevicePropNotSupported                = 0x200A
	RC_InvalidObjectFormatCode               = 0x200B
	RC_StoreFull                             = 0x200C
	RC_ObjectWriteProtected                  = 0x200D
	RC_StoreReadOnly                         = 0x200E
	RC_AccessDenied                          = 0x200F
	RC_NoThumbnailPresent                    = 0x2010
	RC_SelfTestFailed                        = 0x2011
	RC_PartialDeletion                       = 0x2012
	RC_StoreNotAvailable                     = 0x2013
	RC_SpecificationByFormatUnsupported      = 0x2014
	RC_NoValidObjectInfo                     = 0x2015
	RC_InvalidCodeFormat                     = 0x2016
	RC_UnknownVendorCode                     = 0x2017
	RC_CaptureAlreadyTerminated              = 0x2018
	RC_DeviceBusy                            = 0x2019
	RC_InvalidParentObject                   = 0x201A
	RC_InvalidDevicePropFormat               = 0x201B
	RC_InvalidDevicePropValue                = 0x201C
	RC_InvalidParameter                      = 0x201D
	RC_SessionAlreadyOpened                  = 0x201E
	RC_TransactionCanceled                   = 0x201F
	RC_SpecificationOfDestinationUnsupported = 0x2020
)

var RC_names = map[int]string{
	0x2000: "Undefined",
	0x2001: "OK",
	0x2002: "GeneralError",
	0x2003: "SessionNotOpen",
	0x2004: "InvalidTransactionID",
	0x2005: "OperationNotSupported",
	0x2006: "ParameterNotSupported",
	0x2007: "IncompleteTransfer",
	0x2008: "InvalidStorageId",
	0x2009: "InvalidObjectHandle",
	0x200A: "DevicePropNotSupported",
	0x200B: "InvalidObjectFormatCode",
	0x200C: "StoreFull",
	0x200D: "ObjectWriteProtected",
	0x200E: "StoreReadOnly",
	0x200F: "AccessDenied",
	0x2010: "NoThumbnailPresent",
	0x2011: "SelfTestFailed",
	0x2012: "PartialDeletion",
	0x2013: "StoreNotAvailable",
	0x2014: "SpecificationByFormatUnsupported",
	0x2015: "NoValidObjectInfo",
	0x2016: "InvalidCodeFormat",
	0x2017: "UnknownVendorCode",
	0x2018: "CaptureAlreadyTerminated",
	0x2019: "DeviceBusy",
	0x201A: "InvalidParentObject",
	0x201B: "InvalidDevicePropFormat",
	0x201C: "InvalidDevicePropValue",
	0x201D: "InvalidParameter",
	0x201E: "SessionAlreadyOpened",
	0x201F: "TransactionCanceled",
	0x2020: "SpecificationOfDestinationUnsupported",
}

// storage type
const (
	ST_Undefined    = 0x0000
	ST_FixedROM     = 0x0001
	ST_RemovableROM = 0x0002
	ST_FixedRAM     = 0x0003
	ST_RemovableRAM = 0x0004
)

var ST_names = map[int]string{
	0x0000: "Undefined",
	0x0001: "FixedROM",
	0x0002: "RemovableROM",
	0x0003: "FixedRAM",
	0x0004: "RemovableRAM",
}
