package reader

import (
	"github.com/jonx-format/jonx/compress"
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/internal/options"
	"github.com/jonx-format/jonx/jsoncodec"
)

// ReaderConfig collects the collaborators New/Open need: which JsonCodec
// unmarshals schema/index JSON, and which Decompressor decompresses
// column and index blocks (spec.md §2.3).
type ReaderConfig struct {
	JSONCodec    jsoncodec.JsonCodec
	Decompressor compress.Decompressor
}

// ReaderOption configures a ReaderConfig.
type ReaderOption = options.Option[*ReaderConfig]

// WithJSONCodec selects the JsonCodec used to unmarshal schema and index
// blocks.
func WithJSONCodec(jc jsoncodec.JsonCodec) ReaderOption {
	return options.NoError(func(c *ReaderConfig) { c.JSONCodec = jc })
}

// WithDecompressor selects the Decompressor used for column and index
// blocks.
func WithDecompressor(decomp compress.Decompressor) ReaderOption {
	return options.NoError(func(c *ReaderConfig) { c.Decompressor = decomp })
}

// NewReaderConfig builds a ReaderConfig from defaults plus opts, in order.
func NewReaderConfig(defaults ReaderConfig, opts ...ReaderOption) (*ReaderConfig, error) {
	cfg := defaults
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// OpenWith is Open configured through functional options rather than
// positional parameters.
func OpenWith(path string, opts ...ReaderOption) (*Reader, error) {
	cfg, err := NewReaderConfig(ReaderConfig{}, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.JSONCodec == nil {
		return nil, errs.NewFile(path, errs.ErrMissingCollaborator)
	}
	if cfg.Decompressor == nil {
		return nil, errs.NewFile(path, errs.ErrMissingCollaborator)
	}

	return Open(path, cfg.JSONCodec, cfg.Decompressor)
}

// NewWith is New configured through functional options rather than
// positional parameters.
func NewWith(data []byte, opts ...ReaderOption) (*Reader, error) {
	cfg, err := NewReaderConfig(ReaderConfig{}, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.JSONCodec == nil {
		return nil, errs.NewDecodef("", errs.ErrMissingCollaborator, "NewWith requires WithJSONCodec")
	}
	if cfg.Decompressor == nil {
		return nil, errs.NewDecodef("", errs.ErrMissingCollaborator, "NewWith requires WithDecompressor")
	}

	return New(data, cfg.JSONCodec, cfg.Decompressor)
}
