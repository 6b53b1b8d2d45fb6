package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/wire"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Decode a captured row block and print its rows",
	Long: `Decode a captured row block and print its schema and rows.

Example:
  rowwire inspect 2QKot5PkyYHsBCnSM7sF6T9cXic`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("bad block id %q: %w", args[0], err)
		}

		store, ok := storeFromContext(cmd)
		if !ok {
			return fmt.Errorf("store not found in context")
		}

		s, block, err := store.Get(id)
		if err != nil {
			return err
		}

		codec := wire.NewCodec(wire.CodecConfig{})
		rows, st := codec.ExtractRowsFromBlock(s, block)
		if !st.IsOK() {
			return fmt.Errorf("block %s is corrupt: %v", id, st)
		}

		for i := 0; i < s.NumColumns(); i++ {
			col := s.Column(i)
			key := ""
			if i < s.NumKeyColumns() {
				key = " KEY"
			}
			nullable := ""
			if col.Nullable {
				nullable = " NULLABLE"
			}
			fmt.Printf("# %s%s%s\n", col, key, nullable)
		}

		for i, row := range rows {
			fmt.Printf("row %d:", i)
			for c := 0; c < s.NumColumns(); c++ {
				fmt.Printf(" %s=%s", s.Column(c).Name, cellText(row, c))
			}
			fmt.Printf("\n")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func cellText(row schema.Row, i int) string {
	if row.IsNull(i) {
		return "NULL"
	}
	switch row.Schema().Column(i).Type {
	case schema.TypeBool:
		return fmt.Sprintf("%t", row.Bool(i))
	case schema.TypeInt8:
		return fmt.Sprintf("%d", row.Int8(i))
	case schema.TypeInt32:
		return fmt.Sprintf("%d", row.Int32(i))
	case schema.TypeUint32:
		return fmt.Sprintf("%d", row.Uint32(i))
	case schema.TypeInt64:
		return fmt.Sprintf("%d", row.Int64(i))
	case schema.TypeUint64:
		return fmt.Sprintf("%d", row.Uint64(i))
	case schema.TypeFloat64:
		return fmt.Sprintf("%g", row.Float64(i))
	case schema.TypeString:
		return fmt.Sprintf("%q", row.String(i))
	case schema.TypeBinary:
		return fmt.Sprintf("%x", row.Bytes(i))
	}
	return "?"
}
