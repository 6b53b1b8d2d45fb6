package wire

import (
	"fmt"
	"testing"

	"github.com/valkyrdb/rowwire/pkg/schema"
)

func benchSchema(b *testing.B) *schema.Schema {
	b.Helper()
	s, st := schema.NewSchema([]schema.Column{
		{Name: "id", Type: schema.TypeInt64},
		{Name: "name", Type: schema.TypeString},
		{Name: "score", Type: schema.TypeFloat64, Nullable: true},
	}, 1)
	if !st.IsOK() {
		b.Fatal(st)
	}
	return s
}

func BenchmarkAddRowToBlock(b *testing.B) {
	s := benchSchema(b)
	codec := NewCodec(CodecConfig{})
	rb := schema.NewRowBuilder(s)
	rb.AddInt64(42)
	rb.AddString("benchmark payload")
	rb.AddFloat64(0.5)
	row := rb.Row()

	b.ResetTimer()
	block := &RowBlock{}
	for i := 0; i < b.N; i++ {
		codec.AddRowToBlock(row, block)
		if len(block.Rows) > 1<<20 {
			block = &RowBlock{}
		}
	}
}

func BenchmarkExtractRowsFromBlock(b *testing.B) {
	const numRows = 1000

	s := benchSchema(b)
	codec := NewCodec(CodecConfig{})
	block := &RowBlock{}
	rb := schema.NewRowBuilder(s)
	for i := 0; i < numRows; i++ {
		rb.Reset()
		rb.AddInt64(int64(i))
		rb.AddString(fmt.Sprintf("row %d", i))
		rb.AddFloat64(float64(i))
		codec.AddRowToBlock(rb.Row(), block)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, st := codec.ExtractRowsFromBlock(s, block)
		if !st.IsOK() {
			b.Fatal(st)
		}
		if len(rows) != numRows {
			b.Fatalf("got %d rows", len(rows))
		}
	}
}
