// Package jonx is the top-level convenience API: EncodeRecords and Open
// wire default collaborators (gozstd at spec.md §6's fixed level,
// goccy/go-json) around the lower codec/framer/reader packages, the same
// two-tier shape the teacher's mebo.go gives blob/NewNumericEncoder and
// blob/NewNumericDecoder. Callers that need to inject their own
// Compressor/JsonCodec can use EncodeRecordsWith, EncodeRecordsWithOptions
// and OpenWithOptions, or call framer.Encode/reader.New/reader.Open
// directly.
package jonx

import (
	"sort"

	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/framer"
	"github.com/jonx-format/jonx/infer"
	"github.com/jonx-format/jonx/jsoncodec"
	"github.com/jonx-format/jonx/reader"
)

// Record is one input row: a mapping from field name to a decoded JSON
// value (spec.md §3). Go's map type carries no iteration order, so the
// canonical field order (spec.md's "fixed order derived from the first
// record") is resolved here as the first record's keys sorted
// alphabetically — see DESIGN.md's Open Question decisions.
type Record = map[string]any

// EncodeRecords pivots records to columns, infers each column's physical
// type, and frames the result into a complete jonx file, using the
// default gozstd compressor and goccy/go-json codec.
func EncodeRecords(records []Record) ([]byte, error) {
	return EncodeRecordsWith(records, jsoncodec.New(), compress.NewZstdCompressor())
}

// EncodeRecordsWith is EncodeRecords with an injected JsonCodec and
// Compressor (spec.md §6: "these are passed in, not hard-coded").
func EncodeRecordsWith(records []Record, jc jsoncodec.JsonCodec, comp compress.Compressor) ([]byte, error) {
	columns, err := pivot(records)
	if err != nil {
		return nil, err
	}

	return framer.Encode(columns, jc, comp)
}

// EncodeRecordsWithOptions is EncodeRecords configured through
// framer.WriterOption (WithJSONCodec, WithCompressor) rather than
// positional collaborators.
func EncodeRecordsWithOptions(records []Record, opts ...framer.WriterOption) ([]byte, error) {
	columns, err := pivot(records)
	if err != nil {
		return nil, err
	}

	return framer.EncodeWith(columns, opts...)
}

// pivot builds one framer.Column per field, validating that every record
// shares the canonical field set (spec.md §3: "missing or extra keys are
// a fatal encode error") before running type inference on each column.
func pivot(records []Record) ([]framer.Column, error) {
	if len(records) == 0 {
		return nil, nil
	}

	fields := make([]string, 0, len(records[0]))
	for f := range records[0] {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fieldSet := make(map[string]bool, len(fields))
	for _, f := range fields {
		fieldSet[f] = true
	}

	columnValues := make(map[string][]any, len(fields))
	for _, f := range fields {
		columnValues[f] = make([]any, 0, len(records))
	}

	for i, rec := range records {
		if len(rec) != len(fields) {
			return nil, errs.NewEncodef("", errs.ErrHeterogeneousRecord, "record %d has %d fields, want %d", i, len(rec), len(fields))
		}
		for f := range rec {
			if !fieldSet[f] {
				return nil, errs.NewEncodef(f, errs.ErrHeterogeneousRecord, "record %d has an unknown field", i)
			}
		}
		for _, f := range fields {
			columnValues[f] = append(columnValues[f], rec[f])
		}
	}

	columns := make([]framer.Column, len(fields))
	for i, f := range fields {
		typ, err := infer.Column(columnValues[f])
		if err != nil {
			return nil, errs.NewEncodef(f, errs.ErrCodecAssertion, "inferring type: %v", err)
		}
		columns[i] = framer.Column{Name: f, Type: typ, Values: columnValues[f]}
	}

	return columns, nil
}

// Open reads a jonx file at path using the default gozstd/goccy-json
// collaborators.
func Open(path string) (*reader.Reader, error) {
	return reader.Open(path, jsoncodec.New(), compress.NewZstdCompressor())
}

// OpenWithOptions is Open configured through reader.ReaderOption rather
// than default collaborators.
func OpenWithOptions(path string, opts ...reader.ReaderOption) (*reader.Reader, error) {
	return reader.OpenWith(path, opts...)
}
