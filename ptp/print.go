package ptp

import (
	"fmt"
	"strings"
)

func getNames(m map[int]string, vals []UINT16) string {
	r := []string{}
	for _, v := range vals {
		n, ok := m[int(v)]
		if !ok {
			n = fmt.Sprintf("0x%x", uint16(v))
		}
		r = append(r, n)
	}
	return strings.Join(r, ", ")
}

// CodeName returns the symbolic name of code in table m, or hex.
func CodeName(m map[int]string, code UINT16) string {
	return getNames(m, []UINT16{code})
}

func (i *DeviceInfo) String() string {
	return fmt.Sprintf("stdv: %x, ext: %x, extv: v%x, ext desc: %q fmod: %x ops: %s evs: %s "+
		"dprops: %s capfmts: %s imgfmts: %s manu: %q model: %q devv: %q serno: %q",
		uint16(i.StandardVersion),
		uint32(i.VendorExtensionID),
		uint16(i.VendorExtensionVersion),
		i.VendorExtensionDesc,
		uint16(i.FunctionalMode),
		getNames(OC_names, i.OperationsSupported),
		getNames(EC_names, i.EventsSupported),
		getNames(DPC_names, i.DevicePropertiesSupported),
		getNames(OFC_names, i.CaptureFormats),
		getNames(OFC_names, i.ImageFormats),

		i.Manufacturer,
		i.Model,
		i.DeviceVersion,
		i.SerialNumber)
}

func (s *StorageInfo) String() string {
	return fmt.Sprintf("type: %s, fs: %s, access: %s, capacity: %d, free: %d bytes / %d images, desc: %q, label: %q",
		CodeName(ST_names, s.StorageType),
		CodeName(FST_names, s.FilesystemType),
		CodeName(AC_names, s.AccessCapability),
		uint64(s.MaxCapability),
		uint64(s.FreeSpaceInBytes),
		uint32(s.FreeSpaceInImages),
		s.StorageDescription,
		s.VolumeLabel)
}
