package record

import "fmt"

// Byte widths used by the capacity math. Records are tuples of 32-bit signed
// integers, so every field costs IntSize bytes; node links are accounted at
// PointerSize each.
const (
	IntSize     = 4
	PointerSize = 4
	KeySize     = IntSize
)

// ErrArity is returned when a record does not carry exactly the number of
// fields the schema declares.
var ErrArity = fmt.Errorf("record: wrong number of fields")

// Record is an ordered tuple of 32-bit signed integers. The first field is the
// key; the remaining fields are opaque payload.
type Record []int32

// Key returns the primary key (first field).
func (r Record) Key() int32 { return r[0] }

// Clone returns a copy that does not alias r's backing array. Engines clone
// records they retain so later caller mutation cannot corrupt the index.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Schema fixes the arity of every record handled by an engine.
type Schema struct {
	NumFields int
}

// RecordSize returns the byte width of one record under this schema.
func (s Schema) RecordSize() int { return s.NumFields * IntSize }

// Validate rejects records whose arity does not match the schema.
func (s Schema) Validate(r Record) error {
	if len(r) != s.NumFields {
		return fmt.Errorf("%w: want %d, got %d", ErrArity, s.NumFields, len(r))
	}
	return nil
}
