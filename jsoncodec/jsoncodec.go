// Package jsoncodec defines the JsonCodec collaborator interface consumed
// by jonx's core (spec.md §6) and a default implementation backed by
// goccy/go-json, the ecosystem's drop-in encoding/json replacement also
// pulled into the retrieval pack via chaturanga836-storage_system's gin
// dependency tree.
//
// jonx never imports encoding/json directly in the core packages; every
// JSON-text column payload (date, datetime, uuid, str, binary, json,
// enum/string_dict dictionaries, nullable wrappers, and the schema block
// itself) goes through this interface, matching spec.md §6's requirement
// that the JSON parser be a passed-in collaborator, not hard-coded.
package jsoncodec

import (
	"bytes"

	"github.com/goccy/go-json"
)

// JsonCodec encodes and decodes values over the JSON data model: null,
// bool, integer, float, string, array, object (spec.md §6).
type JsonCodec interface {
	// Marshal encodes v as JSON text.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes JSON text b into v, a pointer to the destination.
	Unmarshal(b []byte, v any) error
	// DecodeAny decodes JSON text b into the generic JSON data model,
	// preserving the int-vs-float distinction via json.Number rather than
	// collapsing every number into float64 (as a plain interface{} target
	// would). Type inference (spec.md §4.2) depends on this distinction.
	DecodeAny(b []byte) (any, error)
}

// GoJSONCodec is the default JsonCodec, backed by goccy/go-json.
type GoJSONCodec struct{}

var _ JsonCodec = GoJSONCodec{}

// New returns the default JsonCodec.
func New() GoJSONCodec { return GoJSONCodec{} }

// Marshal encodes v as JSON text using goccy/go-json.
func (GoJSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON text b into v using goccy/go-json.
func (GoJSONCodec) Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

// DecodeAny decodes b with UseNumber enabled so integers survive as
// json.Number instead of being widened to float64.
func (GoJSONCodec) DecodeAny(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}
