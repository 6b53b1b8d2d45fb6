// Package blockstore persists encoded row blocks, together with the
// schema that laid them out, for offline inspection and replay of wire
// traffic. Blocks are stored in a pebble database keyed by ksuid.
package blockstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"

	"github.com/valkyrdb/rowwire/pkg/safemath"
	"github.com/valkyrdb/rowwire/pkg/schema"
	"github.com/valkyrdb/rowwire/pkg/wire"
)

// Frame layout: [CRC32(4)][SchemaLen(4)][RowsLen(4)][IndirectLen(4)]
// followed by the yaml column descriptors, the row data and the
// indirect data. All integers little-endian; the CRC covers everything
// after the CRC field.
const frameHeaderSize = 16

var (
	// ErrCorruption reports a stored frame that fails its length or
	// CRC checks.
	ErrCorruption = errors.New("blockstore: corrupt block frame")
	// ErrNotFound reports an id with no stored block.
	ErrNotFound = errors.New("blockstore: block not found")
)

// Config holds configuration for a Store.
type Config struct {
	Path   string          // pebble database directory
	Logger *zerolog.Logger // optional
}

// Store is a pebble-backed capture store for encoded row blocks.
type Store struct {
	db    *pebble.DB
	codec *wire.Codec
	log   zerolog.Logger
}

// Open opens (creating if needed) the store at config.Path.
func Open(config Config) (*Store, error) {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}
	db, err := pebble.Open(config.Path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open block store: %w", err)
	}
	return &Store{
		db:    db,
		codec: wire.NewCodec(wire.CodecConfig{Logger: config.Logger}),
		log:   log,
	}, nil
}

// Put stores an encoded block and its schema, returning the generated
// block id.
func (s *Store) Put(sch *schema.Schema, block *wire.RowBlock) (ksuid.KSUID, error) {
	schemaBytes, err := yaml.Marshal(s.codec.SchemaToWire(sch))
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to marshal schema descriptors: %w", err)
	}
	for _, n := range []int{len(schemaBytes), len(block.Rows), len(block.IndirectData)} {
		if n > math.MaxUint32 {
			return ksuid.Nil, fmt.Errorf("block section of %d bytes exceeds frame limit", n)
		}
	}

	frame := make([]byte, frameHeaderSize, frameHeaderSize+len(schemaBytes)+len(block.Rows)+len(block.IndirectData))
	binary.LittleEndian.PutUint32(frame[4:], uint32(len(schemaBytes)))
	binary.LittleEndian.PutUint32(frame[8:], uint32(len(block.Rows)))
	binary.LittleEndian.PutUint32(frame[12:], uint32(len(block.IndirectData)))
	frame = append(frame, schemaBytes...)
	frame = append(frame, block.Rows...)
	frame = append(frame, block.IndirectData...)
	binary.LittleEndian.PutUint32(frame[0:], crc32.ChecksumIEEE(frame[4:]))

	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), frame, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store block: %w", err)
	}

	s.log.Debug().
		Str("id", id.String()).
		Int("rows_bytes", len(block.Rows)).
		Int("indirect_bytes", len(block.IndirectData)).
		Msg("stored row block")
	return id, nil
}

// Get loads a stored block and rebuilds its schema. The returned block
// owns its buffers; row views extracted from it stay valid after
// further store calls.
func (s *Store) Get(id ksuid.KSUID) (*schema.Schema, *wire.RowBlock, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("failed to read block %s: %w", id, err)
	}
	defer closer.Close()

	sch, block, err := decodeFrame(s.codec, data)
	if err != nil {
		return nil, nil, fmt.Errorf("block %s: %w", id, err)
	}
	return sch, block, nil
}

// Delete removes a stored block. Deleting an absent id is not an
// error.
func (s *Store) Delete(id ksuid.KSUID) error {
	return s.db.Delete(id.Bytes(), pebble.NoSync)
}

// List returns the ids of all stored blocks.
func (s *Store) List() ([]ksuid.KSUID, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate block store: %w", err)
	}
	defer iter.Close()

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %x", ErrCorruption, iter.Key())
		}
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate block store: %w", err)
	}
	return ids, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func decodeFrame(codec *wire.Codec, data []byte) (*schema.Schema, *wire.RowBlock, error) {
	if len(data) < frameHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d byte frame", ErrCorruption, len(data))
	}

	storedCRC := binary.LittleEndian.Uint32(data[0:])
	if actual := crc32.ChecksumIEEE(data[4:]); actual != storedCRC {
		return nil, nil, fmt.Errorf("%w: CRC32 mismatch: %d != %d", ErrCorruption, storedCRC, actual)
	}

	schemaLen := uint64(binary.LittleEndian.Uint32(data[4:]))
	rowsLen := uint64(binary.LittleEndian.Uint32(data[8:]))
	indirectLen := uint64(binary.LittleEndian.Uint32(data[12:]))

	total := uint64(frameHeaderSize)
	for _, n := range []uint64{schemaLen, rowsLen, indirectLen} {
		var ok bool
		if total, ok = safemath.AddUint64(total, n); !ok {
			return nil, nil, fmt.Errorf("%w: section lengths overflow", ErrCorruption)
		}
	}
	if total != uint64(len(data)) {
		return nil, nil, fmt.Errorf("%w: frame is %d bytes, sections need %d", ErrCorruption, len(data), total)
	}

	var descs []wire.ColumnDescriptor
	schemaEnd := frameHeaderSize + schemaLen
	if err := yaml.Unmarshal(data[frameHeaderSize:schemaEnd], &descs); err != nil {
		return nil, nil, fmt.Errorf("%w: bad schema descriptors: %v", ErrCorruption, err)
	}
	sch, st := codec.SchemaFromWire(descs)
	if !st.IsOK() {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruption, st)
	}

	// Copy out of pebble's buffer: callers hold row views into the
	// block long after the iterator/getter is closed.
	block := &wire.RowBlock{
		Rows:         append([]byte(nil), data[schemaEnd:schemaEnd+rowsLen]...),
		IndirectData: append([]byte(nil), data[schemaEnd+rowsLen:]...),
	}
	return sch, block, nil
}
