// Package schema describes the fixed row layout used by the wire
// boundary layer: ordered column descriptors with a contiguous key
// prefix, and zero-copy row views over row-sized byte buffers.
//
// Every column occupies a fixed slot inside a row: nullable columns are
// prefixed by a one-byte null indicator, and variable-length columns
// hold a 16-byte offset+length descriptor that resolves against an
// arena buffer owned by whoever owns the row storage.
package schema

import (
	"github.com/valkyrdb/rowwire/pkg/status"
)

// Column describes a single column. Immutable after creation.
type Column struct {
	Name     string
	Type     DataType
	Nullable bool
}

// String renders the column as "name[type]", the form used in
// corruption messages.
func (c Column) String() string {
	return c.Name + "[" + c.Type.String() + "]"
}

// width is the column's total footprint inside a row, including the
// null indicator byte for nullable columns.
func (c Column) width() int {
	w := c.Type.CellSize()
	if c.Nullable {
		w++
	}
	return w
}

// Schema is an ordered column list whose first NumKeyColumns entries
// form the key. Construction computes the row layout once; a Schema is
// immutable and safe for concurrent use afterwards.
type Schema struct {
	cols        []Column
	numKeyCols  int
	cellOffsets []int
	rowSize     int
}

// NewSchema validates the column list and computes the row layout.
// Column names must be pairwise distinct and numKeyColumns must be
// within [0, len(cols)].
func NewSchema(cols []Column, numKeyColumns int) (*Schema, *status.Status) {
	if len(cols) == 0 {
		return nil, status.InvalidArgument("schema has no columns")
	}
	if numKeyColumns < 0 || numKeyColumns > len(cols) {
		return nil, status.InvalidArgument(
			"bad key column count %d for %d columns", numKeyColumns, len(cols))
	}

	seen := make(map[string]struct{}, len(cols))
	offsets := make([]int, len(cols))
	size := 0
	for i, col := range cols {
		if !col.Type.valid() {
			return nil, status.InvalidArgument("column %q has unknown type %d", col.Name, uint8(col.Type))
		}
		if _, dup := seen[col.Name]; dup {
			return nil, status.InvalidArgument("duplicate column name: %q", col.Name)
		}
		seen[col.Name] = struct{}{}

		if col.Nullable {
			// Cell bytes sit after the null indicator.
			offsets[i] = size + 1
		} else {
			offsets[i] = size
		}
		size += col.width()
	}

	return &Schema{
		cols:        append([]Column(nil), cols...),
		numKeyCols:  numKeyColumns,
		cellOffsets: offsets,
		rowSize:     size,
	}, status.OK()
}

// NumColumns returns the number of columns.
func (s *Schema) NumColumns() int { return len(s.cols) }

// NumKeyColumns returns the length of the key prefix.
func (s *Schema) NumKeyColumns() int { return s.numKeyCols }

// Column returns the descriptor at index i.
func (s *Schema) Column(i int) Column { return s.cols[i] }

// RowSize is the fixed byte size of one row image.
func (s *Schema) RowSize() int { return s.rowSize }

// CellOffset returns the byte offset of column i's cell value inside a
// row, past the null indicator for nullable columns.
func (s *Schema) CellOffset(i int) int { return s.cellOffsets[i] }
