package schema

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Row is a read-only view over one row image. The view does not own its
// storage: data is a row-sized slice and indirect is the arena holding
// variable-length payloads. A Row is valid only as long as both buffers
// are.
type Row struct {
	schema   *Schema
	data     []byte
	indirect []byte
}

// NewRow wraps a row image and its arena in a view. data must be
// exactly RowSize bytes of the given schema's layout.
func NewRow(s *Schema, data, indirect []byte) Row {
	if len(data) != s.rowSize {
		panic(fmt.Sprintf("schema: row data is %d bytes, layout needs %d", len(data), s.rowSize))
	}
	return Row{schema: s, data: data, indirect: indirect}
}

// Schema returns the schema the row was laid out with.
func (r Row) Schema() *Schema { return r.schema }

// Data returns the raw row image.
func (r Row) Data() []byte { return r.data }

// IsNull reports whether column i is null. Always false for
// non-nullable columns.
func (r Row) IsNull(i int) bool {
	col := r.schema.cols[i]
	if !col.Nullable {
		return false
	}
	return r.data[r.schema.cellOffsets[i]-1] != 0
}

func (r Row) cell(i int, want DataType) []byte {
	col := r.schema.cols[i]
	if col.Type != want {
		panic(fmt.Sprintf("schema: column %s read as %s", col, want))
	}
	off := r.schema.cellOffsets[i]
	return r.data[off : off+col.Type.CellSize()]
}

func (r Row) Bool(i int) bool {
	return r.cell(i, TypeBool)[0] != 0
}

func (r Row) Int8(i int) int8 {
	return int8(r.cell(i, TypeInt8)[0])
}

func (r Row) Int32(i int) int32 {
	return int32(binary.LittleEndian.Uint32(r.cell(i, TypeInt32)))
}

func (r Row) Uint32(i int) uint32 {
	return binary.LittleEndian.Uint32(r.cell(i, TypeUint32))
}

func (r Row) Int64(i int) int64 {
	return int64(binary.LittleEndian.Uint64(r.cell(i, TypeInt64)))
}

func (r Row) Uint64(i int) uint64 {
	return binary.LittleEndian.Uint64(r.cell(i, TypeUint64))
}

func (r Row) Float64(i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(r.cell(i, TypeFloat64)))
}

// Bytes resolves a variable-length column against the arena. Returns
// nil for a null cell.
func (r Row) Bytes(i int) []byte {
	col := r.schema.cols[i]
	if !col.Type.IsVariableLength() {
		panic(fmt.Sprintf("schema: column %s is not variable-length", col))
	}
	if r.IsNull(i) {
		return nil
	}
	off := r.schema.cellOffsets[i]
	dataOff := binary.LittleEndian.Uint64(r.data[off:])
	dataLen := binary.LittleEndian.Uint64(r.data[off+8:])
	return r.indirect[dataOff : dataOff+dataLen]
}

// String is Bytes for string-typed columns.
func (r Row) String(i int) string {
	return string(r.Bytes(i))
}

// VarCell returns the raw offset+length descriptor of a
// variable-length column without resolving it.
func (r Row) VarCell(i int) (offset, length uint64) {
	col := r.schema.cols[i]
	if !col.Type.IsVariableLength() {
		panic(fmt.Sprintf("schema: column %s is not variable-length", col))
	}
	off := r.schema.cellOffsets[i]
	return binary.LittleEndian.Uint64(r.data[off:]), binary.LittleEndian.Uint64(r.data[off+8:])
}

// RowBuilder assembles one row at a time, cell by cell in schema order.
// Variable-length payloads are copied into the builder's own arena, so
// a Row obtained from the builder is valid until the next Reset.
// Misuse (wrong type, wrong cell count, null into a non-nullable
// column) panics: those are programming errors, not data errors.
type RowBuilder struct {
	schema *Schema
	data   []byte
	arena  []byte
	col    int
}

func NewRowBuilder(s *Schema) *RowBuilder {
	return &RowBuilder{
		schema: s,
		data:   make([]byte, s.rowSize),
	}
}

// Reset clears the row image and arena so the builder can assemble the
// next row.
func (b *RowBuilder) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.arena = b.arena[:0]
	b.col = 0
}

func (b *RowBuilder) next(want DataType) (Column, int) {
	if b.col >= len(b.schema.cols) {
		panic("schema: too many cells added to row")
	}
	col := b.schema.cols[b.col]
	if col.Type != want {
		panic(fmt.Sprintf("schema: column %s written as %s", col, want))
	}
	off := b.schema.cellOffsets[b.col]
	b.col++
	return col, off
}

func (b *RowBuilder) AddBool(v bool) {
	_, off := b.next(TypeBool)
	if v {
		b.data[off] = 1
	}
}

func (b *RowBuilder) AddInt8(v int8) {
	_, off := b.next(TypeInt8)
	b.data[off] = byte(v)
}

func (b *RowBuilder) AddInt32(v int32) {
	_, off := b.next(TypeInt32)
	binary.LittleEndian.PutUint32(b.data[off:], uint32(v))
}

func (b *RowBuilder) AddUint32(v uint32) {
	_, off := b.next(TypeUint32)
	binary.LittleEndian.PutUint32(b.data[off:], v)
}

func (b *RowBuilder) AddInt64(v int64) {
	_, off := b.next(TypeInt64)
	binary.LittleEndian.PutUint64(b.data[off:], uint64(v))
}

func (b *RowBuilder) AddUint64(v uint64) {
	_, off := b.next(TypeUint64)
	binary.LittleEndian.PutUint64(b.data[off:], v)
}

func (b *RowBuilder) AddFloat64(v float64) {
	_, off := b.next(TypeFloat64)
	binary.LittleEndian.PutUint64(b.data[off:], math.Float64bits(v))
}

func (b *RowBuilder) AddString(v string) {
	b.addVar(TypeString, []byte(v))
}

func (b *RowBuilder) AddBinary(v []byte) {
	b.addVar(TypeBinary, v)
}

func (b *RowBuilder) addVar(want DataType, payload []byte) {
	_, off := b.next(want)
	arenaOff := uint64(len(b.arena))
	b.arena = append(b.arena, payload...)
	binary.LittleEndian.PutUint64(b.data[off:], arenaOff)
	binary.LittleEndian.PutUint64(b.data[off+8:], uint64(len(payload)))
}

// AddNull marks the current cell null. The cell bytes stay zero.
func (b *RowBuilder) AddNull() {
	if b.col >= len(b.schema.cols) {
		panic("schema: too many cells added to row")
	}
	col := b.schema.cols[b.col]
	if !col.Nullable {
		panic(fmt.Sprintf("schema: null written to non-nullable column %s", col))
	}
	off := b.schema.cellOffsets[b.col]
	b.data[off-1] = 1
	b.col++
}

// Row returns a view over the assembled row. All cells must have been
// added. The view aliases builder storage and is invalidated by Reset.
func (b *RowBuilder) Row() Row {
	if b.col != len(b.schema.cols) {
		panic(fmt.Sprintf("schema: row has %d of %d cells", b.col, len(b.schema.cols)))
	}
	return Row{schema: b.schema, data: b.data, indirect: b.arena}
}
