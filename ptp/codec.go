package ptp

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// DecodeHints carries state that a field cannot determine by itself.
type DecodeHints struct {
	Selector DataTypeSelector
	PropDesc bool // PropDesc is set when decoding property forms; arrays have a 16-bit count.
}

// Validator is implemented by enumerated field types. Decoding or
// encoding a value for which Valid returns false fails with an
// *EnumError.
type Validator interface {
	Valid() bool
}

var (
	selectorType  = reflect.TypeOf(DataTypeSelector(0))
	validatorType = reflect.TypeOf((*Validator)(nil)).Elem()
)

// arrayPrealloc bounds the up-front allocation for arrays; the count
// comes off the wire.
const arrayPrealloc = 1024

func kindSize(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32:
		return 4
	case reflect.Int64, reflect.Uint64:
		return 8
	}
	return 0
}

func checkEnum(f reflect.Value, name string) error {
	if !f.Type().Implements(validatorType) {
		return nil
	}
	if f.Interface().(Validator).Valid() {
		return nil
	}
	var v uint64
	switch f.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v = f.Uint()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = uint64(f.Int())
	}
	return &EnumError{Field: name, Value: v}
}

func decodeInt(r io.Reader, f reflect.Value, name string) error {
	sz := kindSize(f.Kind())
	b, err := readFull(r, sz, name)
	if err != nil {
		return err
	}
	var u uint64
	switch sz {
	case 1:
		u = uint64(b[0])
	case 2:
		u = uint64(byteOrder.Uint16(b))
	case 4:
		u = uint64(byteOrder.Uint32(b))
	case 8:
		u = byteOrder.Uint64(b)
	}
	switch f.Kind() {
	case reflect.Int8:
		f.SetInt(int64(int8(u)))
	case reflect.Int16:
		f.SetInt(int64(int16(u)))
	case reflect.Int32:
		f.SetInt(int64(int32(u)))
	case reflect.Int64:
		f.SetInt(int64(u))
	default:
		f.SetUint(u)
	}
	return checkEnum(f, name)
}

func encodeInt(w io.Writer, f reflect.Value, name string) error {
	if err := checkEnum(f, name); err != nil {
		return err
	}
	var u uint64
	switch f.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		u = uint64(f.Int())
	default:
		u = f.Uint()
	}
	b := make([]byte, kindSize(f.Kind()))
	switch len(b) {
	case 1:
		b[0] = byte(u)
	case 2:
		byteOrder.PutUint16(b, uint16(u))
	case 4:
		byteOrder.PutUint32(b, uint32(u))
	case 8:
		byteOrder.PutUint64(b, u)
	}
	_, err := w.Write(b)
	return err
}

func decodeArray(r io.Reader, t reflect.Type, hint DecodeHints, name string) (reflect.Value, error) {
	var sz int
	if hint.PropDesc {
		s, err := ReadUINT16(r)
		if err != nil {
			return reflect.Value{}, errors.WithMessagef(err, "%s count", name)
		}
		sz = int(s)
	} else {
		s, err := ReadUINT32(r)
		if err != nil {
			return reflect.Value{}, errors.WithMessagef(err, "%s count", name)
		}
		sz = int(s)
	}

	capacity := sz
	if capacity > arrayPrealloc {
		capacity = arrayPrealloc
	}
	slice := reflect.MakeSlice(t, 0, capacity)
	for i := 0; i < sz; i++ {
		elt := reflect.New(t.Elem()).Elem()
		if err := decodeField(r, elt, hint, fmt.Sprintf("%s[%d]", name, i)); err != nil {
			return reflect.Value{}, err
		}
		slice = reflect.Append(slice, elt)
	}
	return slice, nil
}

func encodeArray(w io.Writer, val reflect.Value, hint DecodeHints, name string) error {
	n := val.Len()
	var cnt []byte
	if hint.PropDesc {
		if n > int(MaxUINT16) {
			return &FormatError{What: name, Reason: fmt.Sprintf("%d elements exceed 16-bit count", n)}
		}
		cnt = UINT16(n).Bytes()
	} else {
		if uint64(n) > uint64(MaxUINT32) {
			return &FormatError{What: name, Reason: fmt.Sprintf("%d elements exceed 32-bit count", n)}
		}
		cnt = UINT32(n).Bytes()
	}
	if _, err := w.Write(cnt); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := encodeField(w, val.Index(i), hint, fmt.Sprintf("%s[%d]", name, i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeField(r io.Reader, f reflect.Value, hint DecodeHints, name string) error {
	if !f.CanSet() {
		return fmt.Errorf("ptp: field %s not settable", name)
	}

	switch f.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decodeInt(r, f, name)
	case reflect.String:
		s, err := ReadString(r)
		if err != nil {
			return errors.WithMessage(err, name)
		}
		f.SetString(s)
	case reflect.Array:
		if f.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("ptp: unsupported array type %v for %s", f.Type(), name)
		}
		b, err := readFull(r, f.Len(), name)
		if err != nil {
			return err
		}
		reflect.Copy(f, reflect.ValueOf(b))
	case reflect.Slice:
		sl, err := decodeArray(r, f.Type(), hint, name)
		if err != nil {
			return err
		}
		f.Set(sl)
	case reflect.Interface:
		val, err := InstantiateType(hint)
		if err != nil {
			return errors.WithMessage(err, name)
		}
		if err := decodeField(r, val, hint, name); err != nil {
			return err
		}
		f.Set(val)
	case reflect.Struct:
		return decodeStruct(r, f, hint)
	default:
		return fmt.Errorf("ptp: unsupported kind %v for %s", f.Kind(), name)
	}
	return nil
}

func encodeField(w io.Writer, f reflect.Value, hint DecodeHints, name string) error {
	switch f.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeInt(w, f, name)
	case reflect.String:
		b, err := StringBytes(f.String())
		if err != nil {
			return errors.WithMessage(err, name)
		}
		_, err = w.Write(b)
		return err
	case reflect.Array:
		if f.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("ptp: unsupported array type %v for %s", f.Type(), name)
		}
		b := make([]byte, f.Len())
		for i := range b {
			b[i] = byte(f.Index(i).Uint())
		}
		_, err := w.Write(b)
		return err
	case reflect.Slice:
		return encodeArray(w, f, hint, name)
	case reflect.Interface:
		if f.IsNil() {
			return fmt.Errorf("ptp: nil value for %s", name)
		}
		want, err := InstantiateType(hint)
		if err != nil {
			return errors.WithMessage(err, name)
		}
		if got := f.Elem().Type(); got != want.Type() {
			return &FormatError{
				What:   name,
				Reason: fmt.Sprintf("value of type %v, data type %#x needs %v", got, uint16(hint.Selector), want.Type()),
			}
		}
		return encodeField(w, f.Elem(), hint, name)
	case reflect.Struct:
		return encodeStruct(w, f, hint)
	case reflect.Ptr:
		return encodeField(w, f.Elem(), hint, name)
	}
	return fmt.Errorf("ptp: unsupported kind %v for %s", f.Kind(), name)
}

func decodeStruct(r io.Reader, val reflect.Value, hint DecodeHints) error {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Name() + "." + t.Field(i).Name
		if err := decodeField(r, val.Field(i), hint, name); err != nil {
			return err
		}
		if val.Field(i).Type() == selectorType {
			hint.Selector = val.Field(i).Interface().(DataTypeSelector)
		}
	}
	return nil
}

func encodeStruct(w io.Writer, val reflect.Value, hint DecodeHints) error {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Name() + "." + t.Field(i).Name
		if err := encodeField(w, val.Field(i), hint, name); err != nil {
			return err
		}
		if val.Field(i).Type() == selectorType {
			hint.Selector = val.Field(i).Interface().(DataTypeSelector)
		}
	}
	return nil
}

// Decode reads a PTP data set into the struct pointed to by iface,
// field by field in declaration order. On error the target is left
// untouched.
func Decode(r io.Reader, iface interface{}) error {
	if decoder, ok := iface.(Decoder); ok {
		return decoder.Decode(r)
	}
	return decodeWithHints(r, iface, DecodeHints{Selector: DTC_UNDEF})
}

func decodeWithHints(r io.Reader, iface interface{}, hint DecodeHints) error {
	val := reflect.ValueOf(iface)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("ptp: need non-nil ptr argument: %T", iface)
	}
	val = val.Elem()
	tmp := reflect.New(val.Type()).Elem()
	if val.Kind() == reflect.Struct {
		if err := decodeStruct(r, tmp, hint); err != nil {
			return err
		}
	} else if err := decodeField(r, tmp, hint, val.Type().String()); err != nil {
		return err
	}
	val.Set(tmp)
	return nil
}

// Encode writes the struct pointed to by iface as a PTP data set.
func Encode(w io.Writer, iface interface{}) error {
	if encoder, ok := iface.(Encoder); ok {
		return encoder.Encode(w)
	}
	return encodeWithHints(w, iface, DecodeHints{Selector: DTC_UNDEF})
}

func encodeWithHints(w io.Writer, iface interface{}, hint DecodeHints) error {
	val := reflect.ValueOf(iface)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("ptp: need non-nil ptr argument: %T", iface)
	}
	val = val.Elem()
	if val.Kind() == reflect.Struct {
		return encodeStruct(w, val, hint)
	}
	return encodeField(w, val, hint, val.Type().String())
}

// DecodeArray reads a 32-bit count followed by that many elements
// into the slice pointed to by slicePtr. A zero count yields a
// non-nil empty slice.
func DecodeArray(r io.Reader, slicePtr interface{}) error {
	val := reflect.ValueOf(slicePtr)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("ptp: need slice pointer: %T", slicePtr)
	}
	return decodeWithHints(r, slicePtr, DecodeHints{Selector: DTC_UNDEF})
}

// EncodeArray writes a 32-bit element count and the elements of slice.
func EncodeArray(w io.Writer, slice interface{}) error {
	val := reflect.ValueOf(slice)
	if val.Kind() != reflect.Slice {
		return fmt.Errorf("ptp: need slice: %T", slice)
	}
	return encodeArray(w, val, DecodeHints{}, val.Type().String())
}

// InstantiateType returns an addressable zero value of the type the
// selector names.
func InstantiateType(hint DecodeHints) (reflect.Value, error) {
	var val interface{}
	switch hint.Selector {
	case DTC_INT8:
		val = new(INT8)
	case DTC_UINT8:
		val = new(UINT8)
	case DTC_INT16:
		val = new(INT16)
	case DTC_UINT16:
		val = new(UINT16)
	case DTC_INT32:
		val = new(INT32)
	case DTC_UINT32:
		val = new(UINT32)
	case DTC_INT64:
		val = new(INT64)
	case DTC_UINT64:
		val = new(UINT64)
	case DTC_INT128, DTC_UINT128:
		val = new([16]byte)
	case DTC_STR:
		val = new(string)
	default:
		return reflect.Value{}, &FormatError{
			What:   "data type",
			Reason: fmt.Sprintf("unsupported selector %#x", uint16(hint.Selector)),
		}
	}
	return reflect.ValueOf(val).Elem(), nil
}

func decodePropDescForm(r io.Reader, hint DecodeHints, formFlag PropFormFlag) (DataDependentType, error) {
	switch formFlag {
	case DPFF_None:
		return nil, nil
	case DPFF_Range:
		f := PropDescRangeForm{}
		err := decodeWithHints(r, &f, hint)
		return &f, err
	case DPFF_Enumeration:
		f := PropDescEnumForm{}
		err := decodeWithHints(r, &f, hint)
		return &f, err
	}
	return nil, &EnumError{Field: "DevicePropDesc.FormFlag", Value: uint64(formFlag)}
}

// propDescError names fields of the embedded fixed part after the
// record itself.
func propDescError(err error) error {
	if e, ok := err.(*EnumError); ok {
		return &EnumError{
			Field: strings.Replace(e.Field, "DevicePropDescFixed.", "DevicePropDesc.", 1),
			Value: e.Value,
		}
	}
	return err
}

func (pd *DevicePropDesc) Decode(r io.Reader) error {
	var fixed DevicePropDescFixed
	if err := Decode(r, &fixed); err != nil {
		return propDescError(err)
	}
	form, err := decodePropDescForm(r, DecodeHints{Selector: fixed.DataType, PropDesc: true}, fixed.FormFlag)
	if err != nil {
		return err
	}
	pd.DevicePropDescFixed = fixed
	pd.Form = form
	return nil
}

// Encode fails unless Form matches FormFlag and every value has the
// type DataType selects, so that Decode reads back the same record.
func (pd *DevicePropDesc) Encode(w io.Writer) error {
	var formOK bool
	switch pd.Form.(type) {
	case nil:
		formOK = pd.FormFlag == DPFF_None
	case *PropDescRangeForm:
		formOK = pd.FormFlag == DPFF_Range
	case *PropDescEnumForm:
		formOK = pd.FormFlag == DPFF_Enumeration
	}
	if !formOK && pd.FormFlag.Valid() {
		return &FormatError{
			What:   "DevicePropDesc.Form",
			Reason: fmt.Sprintf("form %T does not match form flag %#x", pd.Form, uint8(pd.FormFlag)),
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, &pd.DevicePropDescFixed); err != nil {
		return propDescError(err)
	}
	if pd.Form != nil {
		if err := encodeWithHints(&buf, pd.Form, DecodeHints{Selector: pd.DataType, PropDesc: true}); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}
