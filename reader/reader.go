// Package reader implements jonx's lazy, random-access file reader
// (spec.md §4.6): header/schema parsing on construction, per-column and
// per-index decompression on first request, and the aggregate/extremum
// query API built on top.
//
// Grounded on the teacher's blob decoder pattern (parse structure eagerly,
// decode payloads lazily, cache decoded results) adapted from mebo's
// per-metric decode to jonx's per-column decode.
package reader

import (
	"os"
	"sort"
	"sync"

	"github.com/jonx-format/jonx/catalog"
	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/framer"
	"github.com/jonx-format/jonx/jsoncodec"
)

// Reader holds a parsed jonx file: the schema, the still-compressed
// column and index blocks, and a cache of whatever has been
// decompressed so far.
type Reader struct {
	path    string
	size    int64
	version uint32

	fields []string
	types  map[string]catalog.Type

	columnBlocks map[string][]byte
	indexBlocks  framer.IndexSection

	jc     jsoncodec.JsonCodec
	decomp compress.Decompressor

	mu          sync.Mutex
	columnCache map[string][]any
	indexCache  map[string][]uint32
}

// Open reads path fully into memory and constructs a Reader over it.
func Open(path string, jc jsoncodec.JsonCodec, decomp compress.Decompressor) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NewFile(path, errs.ErrNotFound)
		}
		if os.IsPermission(err) {
			return nil, errs.NewFile(path, errs.ErrPermission)
		}

		return nil, errs.NewFile(path, err)
	}

	r, err := New(data, jc, decomp)
	if err != nil {
		return nil, err
	}
	r.path = path
	r.size = int64(len(data))

	return r, nil
}

// New parses a jonx file already held in memory (spec.md §4.6 steps 1-4):
// it verifies the signature and version, parses the schema eagerly, and
// locates every column and index block without decompressing them.
func New(data []byte, jc jsoncodec.JsonCodec, decomp compress.Decompressor) (*Reader, error) {
	version, rest, err := framer.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if version != framer.Version {
		return nil, errs.NewDecodef("", errs.ErrUnknownVersion, "got version %d, support %d", version, framer.Version)
	}

	schemaBlock, rest, err := framer.ReadBlock(rest)
	if err != nil {
		return nil, err
	}

	fields, types, err := framer.ReadSchema(schemaBlock, jc, decomp)
	if err != nil {
		return nil, err
	}

	columnBlocks, rest, err := framer.ReadColumnBlocks(rest, fields)
	if err != nil {
		return nil, err
	}

	indexBlocks, err := framer.ReadIndexSection(rest)
	if err != nil {
		return nil, err
	}

	return &Reader{
		size:         int64(len(data)),
		version:      version,
		fields:       fields,
		types:        types,
		columnBlocks: columnBlocks,
		indexBlocks:  indexBlocks,
		jc:           jc,
		decomp:       decomp,
		columnCache:  make(map[string][]any),
		indexCache:   make(map[string][]uint32),
	}, nil
}

func (r *Reader) numRows() int {
	for _, f := range r.fields {
		col, err := r.GetColumn(f)
		if err == nil {
			return len(col)
		}
	}

	return 0
}

// GetColumn returns the full decompressed column for field f, decoding it
// on first access and caching the result for the lifetime of the reader.
func (r *Reader) GetColumn(f string) ([]any, error) {
	typ, ok := r.types[f]
	if !ok {
		return nil, errs.NewValidation(f, errs.ErrUnknownField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.columnCache[f]; ok {
		return cached, nil
	}

	block := r.columnBlocks[f]
	raw, err := r.decomp.Decompress(block)
	if err != nil {
		return nil, errs.NewDecodef(f, errs.ErrInvalidPayload, "decompressing column: %v", err)
	}

	values, err := columnDecode(typ, raw, r.expectedRowCount(), r.jc)
	if err != nil {
		return nil, err
	}

	r.columnCache[f] = values

	return values, nil
}

// expectedRowCount returns the row count derived from any already-cached
// column, or -1 if none is cached yet (the first GetColumn call trusts
// whatever length the codec itself produces).
func (r *Reader) expectedRowCount() int {
	for _, cached := range r.columnCache {
		return len(cached)
	}

	return -1
}

// GetColumns returns a mapping from field name to decompressed column for
// every requested field; behaviour is equivalent to calling GetColumn
// once per name (spec.md §4.6).
func (r *Reader) GetColumns(fs []string) (map[string][]any, error) {
	out := make(map[string][]any, len(fs))
	for _, f := range fs {
		col, err := r.GetColumn(f)
		if err != nil {
			return nil, err
		}
		out[f] = col
	}

	return out, nil
}

func (r *Reader) getIndex(f string) ([]uint32, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.indexCache[f]; ok {
		return cached, true, nil
	}

	block, ok := r.indexBlocks[f]
	if !ok {
		return nil, false, nil
	}

	raw, err := r.decomp.Decompress(block)
	if err != nil {
		return nil, false, errs.NewDecodef(f, errs.ErrInvalidPayload, "decompressing index: %v", err)
	}

	var perm []uint32
	if err := r.jc.Unmarshal(raw, &perm); err != nil {
		return nil, false, errs.NewDecodef(f, errs.ErrInvalidPayload, "unmarshalling index: %v", err)
	}

	r.indexCache[f] = perm

	return perm, true, nil
}

// FindMin returns the least value of column f under its natural order. If
// useIndex is true and an index exists for f, it is decompressed (once)
// and the answer is read off its first slot; otherwise a linear scan is
// performed. nullable<T> columns are scanned skipping nulls.
func (r *Reader) FindMin(f string, useIndex bool) (any, error) {
	return r.extremum(f, useIndex, true)
}

// FindMax returns the greatest value of column f under its natural order,
// mirroring FindMin.
func (r *Reader) FindMax(f string, useIndex bool) (any, error) {
	return r.extremum(f, useIndex, false)
}

func (r *Reader) extremum(f string, useIndex bool, wantMin bool) (any, error) {
	typ, ok := r.types[f]
	if !ok {
		return nil, errs.NewValidation(f, errs.ErrUnknownField)
	}

	col, err := r.GetColumn(f)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, errs.NewValidation(f, errs.ErrEmptyColumn)
	}

	// nullable<T> has no index (spec.md §4.4); skip nulls and fall back
	// to a linear scan over the remaining values.
	if typ.Nullable {
		dense := make([]any, 0, len(col))
		for _, v := range col {
			if v != nil {
				dense = append(dense, v)
			}
		}
		if len(dense) == 0 {
			return nil, errs.NewValidation(f, errs.ErrEmptyColumn)
		}

		return linearExtremum(typ.Kind, dense, wantMin)
	}

	if useIndex {
		if perm, ok, err := r.getIndex(f); err != nil {
			return nil, err
		} else if ok && len(perm) > 0 {
			if wantMin {
				return col[perm[0]], nil
			}

			return col[perm[len(perm)-1]], nil
		}
	}

	return linearExtremum(typ.Kind, col, wantMin)
}

// Sum returns the column's numeric sum: an exact uint64 for unsigned
// integer kinds, an exact int64 for signed integer and timestamp_ms
// kinds, a float64 otherwise (spec.md §4.6). It is only defined for numeric, non-nullable
// columns.
func (r *Reader) Sum(f string) (any, error) {
	typ, ok := r.types[f]
	if !ok {
		return nil, errs.NewValidation(f, errs.ErrUnknownField)
	}
	if typ.Nullable || !typ.Kind.IsNumeric() {
		return nil, errs.NewValidation(f, errs.ErrNotNumeric)
	}

	col, err := r.GetColumn(f)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, errs.NewValidation(f, errs.ErrEmptyColumn)
	}

	return sumColumn(typ.Kind, col)
}

// Avg returns Sum(f) / count as a float64.
func (r *Reader) Avg(f string) (float64, error) {
	typ, ok := r.types[f]
	if !ok {
		return 0, errs.NewValidation(f, errs.ErrUnknownField)
	}
	if typ.Nullable || !typ.Kind.IsNumeric() {
		return 0, errs.NewValidation(f, errs.ErrNotNumeric)
	}

	col, err := r.GetColumn(f)
	if err != nil {
		return 0, err
	}
	if len(col) == 0 {
		return 0, errs.NewValidation(f, errs.ErrEmptyColumn)
	}

	sum, err := sumColumn(typ.Kind, col)
	if err != nil {
		return 0, err
	}

	return toFloat64(sum) / float64(len(col)), nil
}

// Count returns N when called with no field, or the length of field f's
// column otherwise (which equals N by invariant, kept for API symmetry).
func (r *Reader) Count(f ...string) (int, error) {
	if len(f) == 0 {
		return r.numRows(), nil
	}

	col, err := r.GetColumn(f[0])
	if err != nil {
		return 0, err
	}

	return len(col), nil
}

// HasIndex reports whether field f carries a sorted-ordinal index.
func (r *Reader) HasIndex(f string) (bool, error) {
	if _, ok := r.types[f]; !ok {
		return false, errs.NewValidation(f, errs.ErrUnknownField)
	}
	_, ok := r.indexBlocks[f]

	return ok, nil
}

// IsNumeric reports whether field f's declared type is_numeric.
func (r *Reader) IsNumeric(f string) (bool, error) {
	typ, ok := r.types[f]
	if !ok {
		return false, errs.NewValidation(f, errs.ErrUnknownField)
	}

	return typ.Kind.IsNumeric(), nil
}

// Info describes a jonx file's structural summary (spec.md §4.6).
type Info struct {
	Path            string
	Version         uint32
	NumRows         int
	NumColumns      int
	Fields          []string
	Types           map[string]string
	Indexes         []string
	FileSize        int64
	CompressedBytes int64
}

// Info returns the file's structural summary. CompressedBytes is the sum
// of every still-compressed column block's on-disk size, independent of
// how many of those columns have been decompressed so far.
func (r *Reader) Info() Info {
	types := make(map[string]string, len(r.types))
	for f, t := range r.types {
		types[f] = t.String()
	}

	indexes := make([]string, 0, len(r.indexBlocks))
	for f := range r.indexBlocks {
		indexes = append(indexes, f)
	}
	sort.Strings(indexes)

	var compressedBytes int64
	for _, block := range r.columnBlocks {
		compressedBytes += int64(len(block))
	}

	return Info{
		Path:            r.path,
		Version:         r.version,
		NumRows:         r.numRows(),
		NumColumns:      len(r.fields),
		Fields:          append([]string(nil), r.fields...),
		Types:           types,
		Indexes:         indexes,
		FileSize:        r.size,
		CompressedBytes: compressedBytes,
	}
}

// ColumnStats reports field's on-disk compression effectiveness: the
// compressed block's size against the size of its decompressed,
// still codec-encoded payload. Decompresses once per call and is not
// cached, since it is an informational accessor rather than part of the
// decode hot path.
func (r *Reader) ColumnStats(f string) (compress.CompressionStats, error) {
	block, ok := r.columnBlocks[f]
	if !ok {
		return compress.CompressionStats{}, errs.NewValidation(f, errs.ErrUnknownField)
	}

	raw, err := r.decomp.Decompress(block)
	if err != nil {
		return compress.CompressionStats{}, errs.NewDecodef(f, errs.ErrInvalidPayload, "decompressing column: %v", err)
	}

	return compress.NewCompressionStats(compress.CompressionZstd, int64(len(raw)), int64(len(block))), nil
}

// SchemaReport is check_schema's structured result (spec.md §4.6).
type SchemaReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// CheckSchema verifies internal schema consistency: every field has a
// known type, no duplicates, and the field list and type map agree on
// the field set.
func (r *Reader) CheckSchema() SchemaReport {
	report := SchemaReport{Valid: true}

	seen := make(map[string]bool, len(r.fields))
	for _, f := range r.fields {
		if seen[f] {
			report.Valid = false
			report.Errors = append(report.Errors, "duplicate field: "+f)

			continue
		}
		seen[f] = true

		if _, ok := r.types[f]; !ok {
			report.Valid = false
			report.Errors = append(report.Errors, "field has no type: "+f)
		}
	}

	for f := range r.types {
		if !seen[f] {
			report.Valid = false
			report.Errors = append(report.Errors, "type entry for unlisted field: "+f)
		}
	}

	return report
}

// ValidationReport is validate's aggregated, non-short-circuiting result
// (spec.md §4.6, §7: "validate() aggregates rather than short-circuits").
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate runs CheckSchema, then attempts to decompress every column
// block and every index block, checking column lengths and index
// permutation well-formedness. A failure on one field is recorded and
// validation continues across the remaining fields.
func (r *Reader) Validate() ValidationReport {
	schemaReport := r.CheckSchema()
	report := ValidationReport{Valid: schemaReport.Valid}
	report.Errors = append(report.Errors, schemaReport.Errors...)
	report.Warnings = append(report.Warnings, schemaReport.Warnings...)

	n := -1
	for _, f := range r.fields {
		col, err := r.GetColumn(f)
		if err != nil {
			report.Valid = false
			report.Errors = append(report.Errors, f+": "+err.Error())

			continue
		}
		if n == -1 {
			n = len(col)
		} else if len(col) != n {
			report.Valid = false
			report.Errors = append(report.Errors, f+": column length mismatch")
		}
	}

	for f := range r.indexBlocks {
		perm, ok, err := r.getIndex(f)
		if err != nil {
			report.Valid = false
			report.Errors = append(report.Errors, f+": "+err.Error())

			continue
		}
		if !ok {
			continue
		}
		if !isPermutation(perm, n) {
			report.Valid = false
			report.Errors = append(report.Errors, f+": index is not a permutation of [0,N)")
		}
	}

	return report
}

func isPermutation(perm []uint32, n int) bool {
	if n < 0 || len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if int(p) >= n || seen[p] {
			return false
		}
		seen[p] = true
	}

	return true
}
