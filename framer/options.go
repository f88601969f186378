package framer

import (
	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/internal/options"
	"github.com/jonx-format/jonx/jsoncodec"
)

// WriterConfig collects the collaborators Encode needs: which JsonCodec
// marshals the schema and index JSON, and which Compressor compresses
// every column and index block (spec.md §2.3: these are configured per
// writer, never hard-coded).
type WriterConfig struct {
	JSONCodec  jsoncodec.JsonCodec
	Compressor compress.Compressor
}

// WriterOption configures a WriterConfig. Specialises
// internal/options.Option the same way the teacher's
// blob.NumericEncoderOption specialises it for NumericEncoderConfig.
type WriterOption = options.Option[*WriterConfig]

// WithJSONCodec selects the JsonCodec used for schema and index
// marshalling.
func WithJSONCodec(jc jsoncodec.JsonCodec) WriterOption {
	return options.NoError(func(c *WriterConfig) { c.JSONCodec = jc })
}

// WithCompressor selects the Compressor used for column and index blocks.
func WithCompressor(comp compress.Compressor) WriterOption {
	return options.NoError(func(c *WriterConfig) { c.Compressor = comp })
}

// NewWriterConfig builds a WriterConfig from defaults plus opts, in order.
func NewWriterConfig(defaults WriterConfig, opts ...WriterOption) (*WriterConfig, error) {
	cfg := defaults
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// EncodeWith is Encode configured through functional options rather than
// positional parameters. Both WithJSONCodec and WithCompressor are
// mandatory; callers that already hold both collaborators can call
// Encode directly instead.
func EncodeWith(columns []Column, opts ...WriterOption) ([]byte, error) {
	cfg, err := NewWriterConfig(WriterConfig{}, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.JSONCodec == nil {
		return nil, errs.NewEncodef("", errs.ErrMissingCollaborator, "EncodeWith requires WithJSONCodec")
	}
	if cfg.Compressor == nil {
		return nil, errs.NewEncodef("", errs.ErrMissingCollaborator, "EncodeWith requires WithCompressor")
	}

	return Encode(columns, cfg.JSONCodec, cfg.Compressor)
}
