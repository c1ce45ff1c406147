package reader

import (
	"github.com/matzehuels/ihmgraph/pkg/cif"
	"github.com/matzehuels/ihmgraph/pkg/errors"
)

// fieldMap maps attribute names to the cif.Value field they fill.
type fieldMap[T any] map[string]func(*T) *cif.Value

// copyFields sets every field of obj whose attribute is in r, following
// the rules of setField.
func copyFields[T any](obj *T, r cif.Record, fields fieldMap[T]) {
	for key, field := range fields {
		setField(field(obj), r, key)
	}
}

// setField stores attribute key of r in dst. An attribute missing from r
// leaves dst untouched, and so does "?" when dst already holds a value.
func setField(dst *cif.Value, r cif.Record, key string) {
	v, ok := r.Get(key)
	if !ok || (v.IsUnknown() && dst.IsPresent()) {
		return
	}
	*dst = v
}

// intField parses an integer attribute. ok is false when the attribute is
// absent or unknown.
func intField(category string, r cif.Record, key string) (n int, ok bool, err error) {
	v := r.Value(key)
	if !v.IsPresent() {
		return 0, false, nil
	}
	n, err = v.AsInt()
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s.%s", category, key)
	}
	return n, true, nil
}

// seqRange parses seq_id_begin/seq_id_end style attribute pairs.
func seqRange(category string, r cif.Record, beginKey, endKey string) (begin, end int, ok bool, err error) {
	begin, okB, err := intField(category, r, beginKey)
	if err != nil {
		return 0, 0, false, err
	}
	end, okE, err := intField(category, r, endKey)
	if err != nil {
		return 0, 0, false, err
	}
	if okB != okE {
		return 0, 0, false, errors.New(errors.ErrCodeInvalidFormat,
			"%s: %s and %s must be given together", category, beginKey, endKey)
	}
	return begin, end, okB, nil
}

func rangeError(category string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidRange, err, "%s", category)
}

func missing(category, key string) error {
	return errors.New(errors.ErrCodeInvalidFormat, "%s: missing %s", category, key)
}
