package wire

import (
	"encoding/binary"

	"github.com/valkyrdb/rowwire/pkg/safemath"
	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/status"
)

// RowBlock is the unit exchanged with the transport layer: a
// fixed-stride concatenation of row images plus the flat buffer holding
// every variable-length payload. A block must not be encoded into or
// decoded from two goroutines at once.
type RowBlock struct {
	Rows         []byte
	IndirectData []byte
}

// AddRowToBlock appends one row's image to the block, in transmission
// order. Null cells are zeroed in the appended copy so no stale bytes
// cross the trust boundary, and each variable-length payload is copied
// onto IndirectData with the cell's offset field rewritten to point
// into it.
func (c *Codec) AddRowToBlock(row schema.Row, block *RowBlock) {
	s := row.Schema()
	base := len(block.Rows)
	block.Rows = append(block.Rows, row.Data()...)
	dst := block.Rows[base : base+s.RowSize()]

	for i := 0; i < s.NumColumns(); i++ {
		col := s.Column(i)
		cellOff := s.CellOffset(i)

		if col.Nullable && row.IsNull(i) {
			// The indicator byte stays set; the cell bytes must not
			// leak whatever the source row held.
			for b := cellOff; b < cellOff+col.Type.CellSize(); b++ {
				dst[b] = 0
			}
			continue
		}

		if col.Type.IsVariableLength() {
			payload := row.Bytes(i)
			indirOff := uint64(len(block.IndirectData))
			block.IndirectData = append(block.IndirectData, payload...)
			// Length is already correct from the copied image; only
			// the offset moves from the source arena to the block's
			// indirect buffer.
			binary.LittleEndian.PutUint64(dst[cellOff:], indirOff)
			if c.metrics != nil {
				c.metrics.indirectBytesTotal.Add(float64(len(payload)))
			}
		}
	}

	if c.metrics != nil {
		c.metrics.rowsEncoded.Inc()
	}
}

// ExtractRowsFromBlock validates a received block against the schema
// and returns one read-only row view per row, in storage order. The
// views alias the block's buffers: the block must stay alive as long as
// any view is in use. On Corruption the block is in an unspecified
// state and must be discarded, not retried.
func (c *Codec) ExtractRowsFromBlock(s *schema.Schema, block *RowBlock) ([]schema.Row, *status.Status) {
	rowSize := s.RowSize()
	if len(block.Rows)%rowSize != 0 {
		if c.metrics != nil {
			c.metrics.decodeRejects.WithLabelValues(rejectTruncatedBlock).Inc()
		}
		return nil, status.Corruption(
			"row block has %d bytes of data which is not a multiple of row size %d",
			len(block.Rows), rowSize)
	}
	numRows := len(block.Rows) / rowSize

	// Pass 1: bound-check every indirect reference before any view is
	// handed out. Columns in schema order, rows in storage order.
	for i := 0; i < s.NumColumns(); i++ {
		col := s.Column(i)
		if !col.Type.IsVariableLength() {
			continue
		}

		for rowIdx := 0; rowIdx < numRows; rowIdx++ {
			row := schema.NewRow(s, block.Rows[rowIdx*rowSize:(rowIdx+1)*rowSize], nil)
			if col.Nullable && row.IsNull(i) {
				continue
			}
			offset, length := row.VarCell(i)
			end, ok := safemath.AddUint64(offset, length)
			if !ok || end > uint64(len(block.IndirectData)) {
				if c.metrics != nil {
					c.metrics.decodeRejects.WithLabelValues(rejectBadIndirect).Inc()
				}
				return nil, status.Corruption(
					"row #%d contained bad indirect reference for column %s: (%d, %d)",
					rowIdx, col, offset, length)
			}
		}
	}

	// Pass 2: collect the views. Fixed-width and null cells never
	// reference outside their row, so nothing further to check.
	rows := make([]schema.Row, numRows)
	for rowIdx := 0; rowIdx < numRows; rowIdx++ {
		rows[rowIdx] = schema.NewRow(
			s, block.Rows[rowIdx*rowSize:(rowIdx+1)*rowSize], block.IndirectData)
	}

	if c.metrics != nil {
		c.metrics.blocksDecoded.Inc()
	}
	return rows, status.OK()
}
