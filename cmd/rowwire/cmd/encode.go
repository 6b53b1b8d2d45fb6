package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/wire"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode rows into a row block and store it",
	Long: `Encode rows into a wire row block and store it in the capture store.

The schema file holds an ordered list of column descriptors; the rows
file holds a list of maps from column name to value. A nullable column
may be omitted or set to null.

Example:
  rowwire encode --schema schema.yaml --rows rows.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		rowsPath, _ := cmd.Flags().GetString("rows")

		store, ok := storeFromContext(cmd)
		if !ok {
			return fmt.Errorf("store not found in context")
		}

		s, err := loadSchemaFile(schemaPath)
		if err != nil {
			return err
		}

		rowsData, err := os.ReadFile(rowsPath)
		if err != nil {
			return fmt.Errorf("failed to read rows file: %w", err)
		}
		var rows []map[string]any
		if err := yaml.Unmarshal(rowsData, &rows); err != nil {
			return fmt.Errorf("failed to parse rows file: %w", err)
		}

		codec := wire.NewCodec(wire.CodecConfig{})
		block := &wire.RowBlock{}
		rb := schema.NewRowBuilder(s)
		for i, values := range rows {
			rb.Reset()
			if err := buildRow(rb, s, values); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			codec.AddRowToBlock(rb.Row(), block)
		}

		id, err := store.Put(s, block)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", id)
		return nil
	},
}

func init() {
	encodeCmd.Flags().String("schema", "", "Path to the schema YAML file")
	encodeCmd.Flags().String("rows", "", "Path to the rows YAML file")
	_ = encodeCmd.MarkFlagRequired("schema")
	_ = encodeCmd.MarkFlagRequired("rows")
	rootCmd.AddCommand(encodeCmd)
}

func loadSchemaFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var descs []wire.ColumnDescriptor
	if err := yaml.Unmarshal(data, &descs); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	s, st := wire.NewCodec(wire.CodecConfig{}).SchemaFromWire(descs)
	if !st.IsOK() {
		return nil, fmt.Errorf("bad schema: %v", st)
	}
	return s, nil
}

// buildRow feeds one YAML value map into the builder in schema order.
func buildRow(rb *schema.RowBuilder, s *schema.Schema, values map[string]any) error {
	for i := 0; i < s.NumColumns(); i++ {
		col := s.Column(i)
		v, present := values[col.Name]
		if !present || v == nil {
			if !col.Nullable {
				return fmt.Errorf("column %s has no value", col)
			}
			rb.AddNull()
			continue
		}
		if err := addValue(rb, col, v); err != nil {
			return err
		}
	}
	return nil
}

func addValue(rb *schema.RowBuilder, col schema.Column, v any) error {
	switch col.Type {
	case schema.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s: %T is not a bool", col, v)
		}
		rb.AddBool(b)
	case schema.TypeInt8:
		n, err := intValue(col, v)
		if err != nil {
			return err
		}
		rb.AddInt8(int8(n))
	case schema.TypeInt32:
		n, err := intValue(col, v)
		if err != nil {
			return err
		}
		rb.AddInt32(int32(n))
	case schema.TypeUint32:
		n, err := intValue(col, v)
		if err != nil {
			return err
		}
		rb.AddUint32(uint32(n))
	case schema.TypeInt64:
		n, err := intValue(col, v)
		if err != nil {
			return err
		}
		rb.AddInt64(n)
	case schema.TypeUint64:
		n, err := intValue(col, v)
		if err != nil {
			return err
		}
		rb.AddUint64(uint64(n))
	case schema.TypeFloat64:
		switch f := v.(type) {
		case float64:
			rb.AddFloat64(f)
		case int:
			rb.AddFloat64(float64(f))
		default:
			return fmt.Errorf("column %s: %T is not a float", col, v)
		}
	case schema.TypeString:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s: %T is not a string", col, v)
		}
		rb.AddString(str)
	case schema.TypeBinary:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s: %T is not a string", col, v)
		}
		rb.AddBinary([]byte(str))
	default:
		return fmt.Errorf("column %s: unsupported type", col)
	}
	return nil
}

func intValue(col schema.Column, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("column %s: %T is not an integer", col, v)
	}
}
