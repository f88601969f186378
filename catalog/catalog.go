// Package catalog defines the physical type catalogue for jonx columns.
//
// A column's physical type selects both its on-disk payload contract
// (see the codec package) and its classification flags (is it numeric?
// temporal? indexable?). The catalogue is a small closed enum, the same
// shape as the teacher's format.EncodingType/CompressionType enums, just
// with twenty-one members instead of three, plus a nullable wrapper bit.
package catalog

import "fmt"

// Type identifies one physical encoding a column can be stored as.
//
// Nullable columns are represented by setting Nullable=true on the Type
// of the wrapped, non-null physical type; there is no separate "rank" of
// nullable type constants (spec.md §9, "Nullable as a wrapper").
type Type struct {
	Kind     Kind
	Nullable bool
}

// Kind is the non-nullable physical encoding.
type Kind uint8

const (
	KindUnknown Kind = iota

	KindInt8
	KindInt16
	KindInt32
	KindInt64

	KindUint8
	KindUint16
	KindUint32
	KindUint64

	KindFloat16
	KindFloat32
	KindFloat64

	KindBool

	KindDate
	KindDatetime
	KindTimestampMs

	KindUUID

	KindEnum
	KindStringDict

	KindStr
	KindBinary

	KindJSON
)

// String renders the canonical schema-block spelling of a Kind, e.g. "uint8".
func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat16:
		return "float16"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindDatetime:
		return "datetime"
	case KindTimestampMs:
		return "timestamp_ms"
	case KindUUID:
		return "uuid"
	case KindEnum:
		return "enum"
	case KindStringDict:
		return "string_dict"
	case KindStr:
		return "str"
	case KindBinary:
		return "binary"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// String renders the schema-block spelling of a Type, wrapping nullable
// kinds as "nullable<T>" per spec.md §3.
func (t Type) String() string {
	if t.Nullable {
		return fmt.Sprintf("nullable<%s>", t.Kind.String())
	}

	return t.Kind.String()
}

// ParseKind parses a bare (non-nullable) kind name. It does not accept the
// "nullable<...>" wrapper; use ParseType for schema-block strings.
func ParseKind(s string) (Kind, error) {
	for k := KindInt8; k <= KindJSON; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return KindUnknown, fmt.Errorf("catalog: unknown physical type %q", s)
}

// ParseType parses a schema-block type string, e.g. "uint8" or
// "nullable<string_dict>", into a Type.
func ParseType(s string) (Type, error) {
	const prefix, suffix = "nullable<", ">"
	if len(s) > len(prefix)+len(suffix) && s[:len(prefix)] == prefix && s[len(s)-1:] == suffix {
		inner := s[len(prefix) : len(s)-1]
		k, err := ParseKind(inner)
		if err != nil {
			return Type{}, err
		}

		return Type{Kind: k, Nullable: true}, nil
	}

	k, err := ParseKind(s)
	if err != nil {
		return Type{}, err
	}

	return Type{Kind: k}, nil
}

// IsInteger reports whether k is one of the signed/unsigned integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is one of the three float widths.
func (k Kind) IsFloat() bool {
	switch k {
	case KindFloat16, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether k is integer or float (spec.md §4.1).
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// IsTemporal reports whether k is one of the temporal kinds.
func (k Kind) IsTemporal() bool {
	switch k {
	case KindDate, KindDatetime, KindTimestampMs:
		return true
	default:
		return false
	}
}

// IsIndexable reports whether k gets a sorted-ordinal index (spec.md §3).
func (k Kind) IsIndexable() bool {
	return k.IsNumeric() || k.IsTemporal()
}

// IsSignedInteger reports whether k is one of the signed integer widths.
func (k Kind) IsSignedInteger() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsUnsignedInteger reports whether k is one of the unsigned integer widths.
func (k Kind) IsUnsignedInteger() bool {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

// IsBinaryPacked reports whether k's dense, non-null payload is a fixed-width
// little-endian binary array rather than JSON text (spec.md §4.3). This
// governs how nullable<T>'s "values" field is stored: binary-packed types
// are base64'd, everything else is a nested JSON array.
func (k Kind) IsBinaryPacked() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat16, KindFloat32, KindFloat64,
		KindBool, KindTimestampMs:
		return true
	default:
		return false
	}
}

// Width returns the fixed element width in bytes for binary-packed kinds,
// and 0 for variable-length/JSON-text kinds.
func (k Kind) Width() int {
	switch k {
	case KindInt8, KindUint8, KindBool:
		return 1
	case KindInt16, KindUint16, KindFloat16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64, KindTimestampMs:
		return 8
	default:
		return 0
	}
}

// IntRange describes the inclusive value range an integer kind can hold,
// used by the inference narrowing algorithm (spec.md §4.2 step 4).
type IntRange struct {
	Kind    Kind
	Lo, Hi  int64
	Unsiged bool
}

// UnsignedWidths lists the unsigned integer kinds narrowest-first, with
// their maximum representable value, for inference narrowing.
var UnsignedWidths = []struct {
	Kind Kind
	Max  uint64
}{
	{KindUint8, 255},
	{KindUint16, 65535},
	{KindUint32, 4294967295},
	{KindUint64, 1<<64 - 1},
}

// SignedWidths lists the signed integer kinds narrowest-first, with their
// inclusive [min,max] range, for inference narrowing.
var SignedWidths = []struct {
	Kind     Kind
	Min, Max int64
}{
	{KindInt8, -128, 127},
	{KindInt16, -32768, 32767},
	{KindInt32, -2147483648, 2147483647},
	{KindInt64, -1 << 63, 1<<63 - 1},
}
