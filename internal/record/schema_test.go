package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	s := Schema{NumFields: 3}
	require.NoError(t, s.Validate(Record{1, 2, 3}))
	require.ErrorIs(t, s.Validate(Record{1, 2}), ErrArity)
	require.ErrorIs(t, s.Validate(Record{1, 2, 3, 4}), ErrArity)
	require.ErrorIs(t, s.Validate(nil), ErrArity)
}

func TestRecordSize(t *testing.T) {
	require.Equal(t, 12, Schema{NumFields: 3}.RecordSize())
	require.Equal(t, 4, Schema{NumFields: 1}.RecordSize())
}

func TestKeyAndClone(t *testing.T) {
	r := Record{7, 8, 9}
	require.Equal(t, int32(7), r.Key())

	c := r.Clone()
	c[0] = 1
	require.Equal(t, int32(7), r.Key())
	require.Equal(t, int32(1), c.Key())
}
