package wire

import (
	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/status"
)

// ColumnDescriptor is the wire form of one column. Descriptors are
// carried as an ordered list: position defines column order, and the
// IsKey flags must form a contiguous leading run.
type ColumnDescriptor struct {
	Name       string          `yaml:"name"`
	Type       schema.DataType `yaml:"type"`
	IsNullable bool            `yaml:"is_nullable"`
	IsKey      bool            `yaml:"is_key"`
}

// SchemaToWire emits the ordered column descriptor list for a schema.
// It always succeeds.
func (c *Codec) SchemaToWire(s *schema.Schema) []ColumnDescriptor {
	descs := make([]ColumnDescriptor, s.NumColumns())
	for i := 0; i < s.NumColumns(); i++ {
		col := s.Column(i)
		descs[i] = ColumnDescriptor{
			Name:       col.Name,
			Type:       col.Type,
			IsNullable: col.Nullable,
			IsKey:      i < s.NumKeyColumns(),
		}
	}
	return descs
}

// SchemaFromWire rebuilds a schema from a descriptor list, counting
// the leading run of key columns. A key column after a non-key column
// fails with InvalidArgument, as does a duplicate column name.
func (c *Codec) SchemaFromWire(descs []ColumnDescriptor) (*schema.Schema, *status.Status) {
	cols := make([]schema.Column, 0, len(descs))
	numKeyCols := 0
	inKeyRegion := true
	for _, d := range descs {
		cols = append(cols, schema.Column{
			Name:     d.Name,
			Type:     d.Type,
			Nullable: d.IsNullable,
		})
		if d.IsKey {
			if !inKeyRegion {
				return nil, status.InvalidArgument("out-of-order key column %q", d.Name)
			}
			numKeyCols++
		} else {
			inKeyRegion = false
		}
	}
	return schema.NewSchema(cols, numKeyCols)
}
