package codec

import (
	"github.com/jonx-format/jonx/errs"
	"github.com/jonx-format/jonx/internal/hash"
	"github.com/jonx-format/jonx/jsoncodec"
)

// dictPayload is the on-disk shape of an enum/string_dict block (spec.md
// §4.3): a deduplicated dictionary plus one index per row.
//
// Grounded on the teacher's blob/text_encoder.go tag-dictionary path
// (mebo dedupes tag values into a string table the same way), rebuilt here
// against internal/hash.StringSet instead of mebo's tag-specific table and
// emitted as JSON rather than mebo's packed binary tag block, per
// spec.md's text-payload contract for these kinds.
type dictPayload struct {
	Dict []string `json:"dict"`
	Idx  []int    `json:"idx"`
}

func encodeDict(values []any, jc jsoncodec.JsonCodec) ([]byte, error) {
	set := hash.NewStringSet()
	idx := make([]int, len(values))

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, errs.NewEncodef("", errs.ErrValueOutOfRange, "element %d is not a string", i)
		}
		set.Add(s)
		idx[i] = set.IndexOf(s)
	}

	b, err := jc.Marshal(&dictPayload{Dict: set.Order(), Idx: idx})
	if err != nil {
		return nil, errs.NewEncodef("", errs.ErrCodecAssertion, "marshal dict payload: %v", err)
	}

	return b, nil
}

func decodeDict(data []byte, n int, jc jsoncodec.JsonCodec) ([]any, error) {
	var payload dictPayload
	if err := jc.Unmarshal(data, &payload); err != nil {
		return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "unmarshal dict payload: %v", err)
	}
	if len(payload.Idx) != n {
		return nil, errs.NewDecodef("", errs.ErrBlockLengthMismatch, "want %d indices, got %d", n, len(payload.Idx))
	}

	out := make([]any, n)
	for i, di := range payload.Idx {
		if di < 0 || di >= len(payload.Dict) {
			return nil, errs.NewDecodef("", errs.ErrInvalidPayload, "index %d out of range for dict of size %d", di, len(payload.Dict))
		}
		out[i] = payload.Dict[di]
	}

	return out, nil
}
