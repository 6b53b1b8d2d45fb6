// Package wire converts between the in-memory row representation and
// the formats that cross process boundaries. It is the codec layer of
// the transport boundary: producers encode rows into row blocks before
// handing buffers to the transport, consumers validate and rehydrate
// received buffers before reading rows.
//
// # Row block format
//
// A row block is two byte buffers. Rows is a concatenation of
// fixed-size row images (stride = the schema's row size; its length
// must be an exact multiple of it). IndirectData holds the raw bytes of
// every variable-length cell, appended in encode order. Inside Rows, a
// variable-length cell's descriptor holds a byte offset into
// IndirectData instead of an offset into a local arena; rewriting that
// offset is the only difference between the in-memory and on-wire row
// layouts.
//
// Decoding treats the block as hostile: the row buffer length, and
// every indirect offset+length pair, are validated with
// overflow-checked arithmetic before any row view is produced. Any
// violation yields a Corruption status and leaves the block in an
// unspecified state; callers must discard it rather than retry.
//
// # Schema and status descriptors
//
// The same boundary carries schemas as ordered column descriptor lists
// (order defines column order; is_key flags must form a contiguous
// prefix) and operation outcomes as compact status descriptors (code,
// optional message, optional posix error number). The status mapping is
// total in both directions: codes outside the closed set degrade to a
// readable generic form instead of failing.
//
// All codecs are stateless transformations over caller-supplied
// buffers. Concurrent calls are safe on disjoint blocks; a single block
// must not be encoded into or decoded from two goroutines at once.
package wire
