package blockstore

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/require"

	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/wire"
)

func storeTestSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, st := schema.NewSchema([]schema.Column{
		{Name: "id", Type: schema.TypeInt64},
		{Name: "name", Type: schema.TypeString},
		{Name: "note", Type: schema.TypeString, Nullable: true},
	}, 1)
	require.True(t, st.IsOK())
	return s
}

func encodeTestBlock(t *testing.T, s *schema.Schema, numRows int) *wire.RowBlock {
	t.Helper()
	codec := wire.NewCodec(wire.CodecConfig{})
	block := &wire.RowBlock{}
	rb := schema.NewRowBuilder(s)
	for i := 0; i < numRows; i++ {
		rb.Reset()
		rb.AddInt64(int64(i))
		rb.AddString(fmt.Sprintf("name %d", i))
		if i%3 == 0 {
			rb.AddNull()
		} else {
			rb.AddString(fmt.Sprintf("note %d", i))
		}
		codec.AddRowToBlock(rb.Row(), block)
	}
	return block
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestStorePutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	s := storeTestSchema(t)
	block := encodeTestBlock(t, s, 7)

	id, err := store.Put(s, block)
	require.NoError(t, err)

	gotSchema, gotBlock, err := store.Get(id)
	require.NoError(t, err)
	require.Equal(t, block.Rows, gotBlock.Rows)
	require.Equal(t, block.IndirectData, gotBlock.IndirectData)
	require.Equal(t, s.NumKeyColumns(), gotSchema.NumKeyColumns())
	require.Equal(t, s.RowSize(), gotSchema.RowSize())

	// The loaded block decodes back into readable rows.
	codec := wire.NewCodec(wire.CodecConfig{})
	rows, st := codec.ExtractRowsFromBlock(gotSchema, gotBlock)
	require.True(t, st.IsOK())
	require.Len(t, rows, 7)
	require.Equal(t, "name 4", rows[4].String(1))
	require.True(t, rows[3].IsNull(2))
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)
	s := storeTestSchema(t)

	id, err := store.Put(s, encodeTestBlock(t, s, 1))
	require.NoError(t, err)
	require.NoError(t, store.Delete(id))

	_, _, err = store.Get(id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreList(t *testing.T) {
	store := openTestStore(t)
	s := storeTestSchema(t)

	ids, err := store.List()
	require.NoError(t, err)
	require.Empty(t, ids)

	want := make(map[string]bool)
	for i := 0; i < 3; i++ {
		id, err := store.Put(s, encodeTestBlock(t, s, i+1))
		require.NoError(t, err)
		want[id.String()] = true
	}

	ids, err = store.List()
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for _, id := range ids {
		require.True(t, want[id.String()])
	}
}

func TestDecodeFrameCorruption(t *testing.T) {
	codec := wire.NewCodec(wire.CodecConfig{})

	t.Run("short frame", func(t *testing.T) {
		_, _, err := decodeFrame(codec, []byte{1, 2, 3})
		require.ErrorIs(t, err, ErrCorruption)
	})

	t.Run("flipped bit", func(t *testing.T) {
		store := openTestStore(t)
		s := storeTestSchema(t)
		block := encodeTestBlock(t, s, 2)

		id, err := store.Put(s, block)
		require.NoError(t, err)

		// Rewrite the stored frame with one payload byte flipped.
		data, closer, err := store.db.Get(id.Bytes())
		require.NoError(t, err)
		mangled := append([]byte(nil), data...)
		require.NoError(t, closer.Close())
		mangled[len(mangled)-1] ^= 0xFF
		require.NoError(t, store.db.Set(id.Bytes(), mangled, pebble.NoSync))

		_, _, err = store.Get(id)
		require.ErrorIs(t, err, ErrCorruption)
		require.Contains(t, err.Error(), "CRC32 mismatch")
	})
}
