// Package framer implements jonx's bit-exact file layout (spec.md §4.5,
// §6): a four-byte signature, a version u32, a length-prefixed compressed
// schema block, one length-prefixed compressed block per column in schema
// order, and a trailing index section.
//
// Grounded on the teacher's section/numeric_header.go Parse/Bytes pair
// (explicit byte-offset doc comments per field, engine.PutUintNN
// little-endian writes) for the style of hand-rolled binary layout
// (de)serialization; the concrete layout is spec.md §6's bit-exact table,
// unrelated to the teacher's own metric-blob header shape. Framer only
// frames and unframes bytes: decompression and the query API live in
// reader.
package framer

import (
	"bytes"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/codec"
	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/endian"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/index"
	"github.com/jonx-format/jonx/internal/pool"
	"github.com/jonx-format/jonx/jsoncodec"
)

// Signature is the four-byte magic every jonx file starts with.
var Signature = [4]byte{'J', 'O', 'N', 'X'}

// Version is the current file format version written by Encode.
const Version uint32 = 1

const headerSize = 4 + 4 // signature + version, before the schema block's own length prefix

var le = endian.GetLittleEndianEngine()

// Column is one named, typed, fully-materialised column ready to frame.
// The encoder (jonx.EncodeRecords) builds these via infer+codec; framer
// itself performs no type inference.
type Column struct {
	Name   string
	Type   catalog.Type
	Values []any
}

type schemaJSON struct {
	Fields []string          `json:"fields"`
	Types  map[string]string `json:"types"`
}

// Encode serialises columns into a complete jonx file byte sequence: the
// header, the schema block, one compressed column block per column in
// order, then the index section with one entry per indexable,
// non-nullable column (spec.md §4.4, §6).
func Encode(columns []Column, jc jsoncodec.JsonCodec, comp compress.Compressor) ([]byte, error) {
	if err := checkUniformLength(columns); err != nil {
		return nil, err
	}

	// The whole file is assembled in one blob-set-class buffer, borrowed
	// from the pool the same way the teacher's encoders borrow scratch
	// space instead of allocating a fresh slice per write.
	out := pool.GetBlobSetBuffer()
	defer pool.PutBlobSetBuffer(out)

	writeRaw(out, Signature[:])
	writeU32(out, Version)

	schemaBlock, err := buildSchemaBlock(columns, jc, comp)
	if err != nil {
		return nil, err
	}
	writeFramedBlock(out, schemaBlock)

	type indexEntry struct {
		name  string
		block []byte
	}
	var indexEntries []indexEntry

	for _, col := range columns {
		block, err := codec.Encode(col.Type, col.Values, jc)
		if err != nil {
			return nil, err
		}

		compressed, err := comp.Compress(block)
		if err != nil {
			return nil, errs.NewEncodef(col.Name, errs.ErrCodecAssertion, "compressing column block: %v", err)
		}
		writeFramedBlock(out, compressed)

		perm, err := index.Build(col.Values, col.Type)
		if err != nil {
			return nil, errs.NewEncodef(col.Name, errs.ErrCodecAssertion, "building index: %v", err)
		}
		if perm == nil {
			continue
		}

		idxJSON, err := jc.Marshal(perm)
		if err != nil {
			return nil, errs.NewEncodef(col.Name, errs.ErrCodecAssertion, "marshalling index: %v", err)
		}
		idxCompressed, err := comp.Compress(idxJSON)
		if err != nil {
			return nil, errs.NewEncodef(col.Name, errs.ErrCodecAssertion, "compressing index block: %v", err)
		}
		indexEntries = append(indexEntries, indexEntry{name: col.Name, block: idxCompressed})
	}

	writeU32(out, uint32(len(indexEntries)))
	for _, e := range indexEntries {
		// Each entry is composed in its own blob-class scratch buffer
		// before being flushed into the file-level buffer, so a single
		// entry's writes never force the whole file to reallocate.
		entry := pool.GetBlobBuffer()
		writeU32(entry, uint32(len(e.name)))
		writeRaw(entry, []byte(e.name))
		writeFramedBlock(entry, e.block)
		writeRaw(out, entry.Bytes())
		pool.PutBlobBuffer(entry)
	}

	// out is returned to the pool on defer, so the caller gets its own
	// copy rather than a slice backed by memory another Encode call may
	// reuse.
	result := make([]byte, out.Len())
	copy(result, out.Bytes())

	return result, nil
}

func checkUniformLength(columns []Column) error {
	if len(columns) == 0 {
		return nil
	}
	n := len(columns[0].Values)
	for _, col := range columns {
		if len(col.Values) != n {
			return errs.NewEncodef(col.Name, errs.ErrHeterogeneousRecord, "column has %d values, want %d", len(col.Values), n)
		}
	}

	return nil
}

func buildSchemaBlock(columns []Column, jc jsoncodec.JsonCodec, comp compress.Compressor) ([]byte, error) {
	s := schemaJSON{
		Fields: make([]string, len(columns)),
		Types:  make(map[string]string, len(columns)),
	}
	for i, col := range columns {
		s.Fields[i] = col.Name
		s.Types[col.Name] = col.Type.String()
	}

	raw, err := jc.Marshal(s)
	if err != nil {
		return nil, errs.NewEncodef("", errs.ErrCodecAssertion, "marshalling schema: %v", err)
	}

	return comp.Compress(raw)
}

// writeU32 appends a little-endian u32 in place, the same Grow-then-Slice
// idiom the teacher's numeric encoders use for fixed-width fields: grow
// for the headroom, take a mutable window over it, write through the
// endian engine, then commit the new length.
func writeU32(buf *pool.ByteBuffer, v uint32) {
	buf.Grow(4)
	n := buf.Len()
	le.PutUint32(buf.Slice(n, n+4), v)
	buf.SetLength(n + 4)
}

// writeRaw appends data verbatim, the Grow-then-MustWrite idiom the
// teacher's variable-length string encoder uses for payloads whose size
// isn't known until the caller has the bytes in hand.
func writeRaw(buf *pool.ByteBuffer, data []byte) {
	buf.Grow(len(data))
	buf.MustWrite(data)
}

func writeFramedBlock(buf *pool.ByteBuffer, block []byte) {
	writeU32(buf, uint32(len(block)))
	writeRaw(buf, block)
}

// ParseHeader validates the signature and returns the version and the
// remaining bytes (the schema block onward). Unknown versions are not
// rejected here; callers that only support Version should compare
// explicitly (spec.md §4.6 step 1: "Unknown versions fail").
func ParseHeader(data []byte) (version uint32, rest []byte, err error) {
	if len(data) < headerSize {
		return 0, nil, errs.NewDecodef("", errs.ErrTruncatedBlock, "header requires %d bytes, got %d", headerSize, len(data))
	}
	if !bytes.Equal(data[0:4], Signature[:]) {
		return 0, nil, errs.NewDecode("", errs.ErrBadSignature)
	}

	return le.Uint32(data[4:8]), data[8:], nil
}

// ReadBlock reads one u32-length-prefixed block from the front of data
// and returns it along with the remaining bytes.
func ReadBlock(data []byte) (block []byte, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, errs.NewDecodef("", errs.ErrTruncatedBlock, "block length prefix requires 4 bytes, got %d", len(data))
	}

	length := le.Uint32(data[0:4])
	data = data[4:]
	if uint64(len(data)) < uint64(length) {
		return nil, nil, errs.NewDecodef("", errs.ErrTruncatedBlock, "block declares %d bytes, only %d remain", length, len(data))
	}

	return data[:length], data[length:], nil
}

// ReadSchema decompresses and parses the schema block, returning the
// canonical field order and the per-field declared type.
func ReadSchema(block []byte, jc jsoncodec.JsonCodec, decomp compress.Decompressor) (fields []string, types map[string]catalog.Type, err error) {
	raw, err := decomp.Decompress(block)
	if err != nil {
		return nil, nil, errs.NewDecodef("", errs.ErrInvalidPayload, "decompressing schema block: %v", err)
	}

	var s schemaJSON
	if err := jc.Unmarshal(raw, &s); err != nil {
		return nil, nil, errs.NewDecodef("", errs.ErrInvalidPayload, "unmarshalling schema: %v", err)
	}

	types = make(map[string]catalog.Type, len(s.Types))
	for name, spelling := range s.Types {
		typ, err := catalog.ParseType(spelling)
		if err != nil {
			return nil, nil, errs.NewDecodef(name, errs.ErrSchemaInconsistent, "%v", err)
		}
		types[name] = typ
	}
	for _, f := range s.Fields {
		if _, ok := types[f]; !ok {
			return nil, nil, errs.NewDecodef(f, errs.ErrSchemaInconsistent, "field listed but has no type entry")
		}
	}

	return s.Fields, types, nil
}

// ReadColumnBlocks consumes one length-prefixed compressed block per
// field, in schema order, from the front of data, and returns the
// remaining bytes (the index section).
func ReadColumnBlocks(data []byte, fields []string) (blocks map[string][]byte, rest []byte, err error) {
	blocks = make(map[string][]byte, len(fields))
	for _, f := range fields {
		var block []byte
		block, data, err = ReadBlock(data)
		if err != nil {
			return nil, nil, errs.NewDecodef(f, errs.ErrTruncatedBlock, "%v", err)
		}
		blocks[f] = block
	}

	return blocks, data, nil
}

// IndexSection maps field name to its compressed sorted-ordinal index
// block, as found in the file; fields with no index simply have no entry.
type IndexSection map[string][]byte

// ReadIndexSection parses the trailing index section: a count, then that
// many (name, block) entries.
func ReadIndexSection(data []byte) (IndexSection, error) {
	if len(data) < 4 {
		return nil, errs.NewDecodef("", errs.ErrTruncatedBlock, "index count requires 4 bytes, got %d", len(data))
	}
	count := le.Uint32(data[0:4])
	data = data[4:]

	section := make(IndexSection, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 4 {
			return nil, errs.NewDecodef("", errs.ErrTruncatedBlock, "index entry %d: name length requires 4 bytes", i)
		}
		nameLen := le.Uint32(data[0:4])
		data = data[4:]
		if uint64(len(data)) < uint64(nameLen) {
			return nil, errs.NewDecodef("", errs.ErrTruncatedBlock, "index entry %d: name declares %d bytes, only %d remain", i, nameLen, len(data))
		}
		name := string(data[:nameLen])
		data = data[nameLen:]

		var block []byte
		var err error
		block, data, err = ReadBlock(data)
		if err != nil {
			return nil, errs.NewDecodef(name, errs.ErrTruncatedBlock, "%v", err)
		}
		section[name] = block
	}

	return section, nil
}
