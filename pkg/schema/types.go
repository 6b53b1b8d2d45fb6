package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DataType is the scalar type tag of a column.
type DataType uint8

const (
	TypeBool DataType = iota
	TypeInt8
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeFloat64
	TypeString
	TypeBinary
)

// varCellSize is the in-row footprint of a variable-length cell: an
// 8-byte offset into the owning arena followed by an 8-byte length.
const varCellSize = 16

type typeInfo struct {
	name     string
	cellSize int
	varLen   bool
}

var typeInfos = map[DataType]typeInfo{
	TypeBool:    {"bool", 1, false},
	TypeInt8:    {"int8", 1, false},
	TypeInt32:   {"int32", 4, false},
	TypeUint32:  {"uint32", 4, false},
	TypeInt64:   {"int64", 8, false},
	TypeUint64:  {"uint64", 8, false},
	TypeFloat64: {"float64", 8, false},
	TypeString:  {"string", varCellSize, true},
	TypeBinary:  {"binary", varCellSize, true},
}

// CellSize returns the fixed number of bytes the type occupies inside a
// row. Variable-length types occupy their offset+length descriptor, not
// the payload itself.
func (t DataType) CellSize() int {
	return typeInfos[t].cellSize
}

// IsVariableLength reports whether values of the type live in the
// indirect arena rather than inline in the row.
func (t DataType) IsVariableLength() bool {
	return typeInfos[t].varLen
}

func (t DataType) valid() bool {
	_, ok := typeInfos[t]
	return ok
}

func (t DataType) String() string {
	if info, ok := typeInfos[t]; ok {
		return info.name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseDataType maps a type name back to its tag. Names are the same
// strings produced by DataType.String.
func ParseDataType(name string) (DataType, error) {
	for t, info := range typeInfos {
		if info.name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown data type %q", name)
}

// MarshalYAML renders the type by name so schema files stay readable.
func (t DataType) MarshalYAML() (interface{}, error) {
	if !t.valid() {
		return nil, fmt.Errorf("cannot marshal unknown data type %d", uint8(t))
	}
	return t.String(), nil
}

func (t *DataType) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseDataType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
