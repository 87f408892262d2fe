package index

import (
	"errors"
	"fmt"
	"io"

	"github.com/ghduque/indexlab/internal/record"
)

// Engine is the contract both index engines expose to the driver and the CLI.
// NotFound outcomes are reported through the bool returns, never as errors.
type Engine interface {
	Insert(r record.Record) error
	Remove(key int32) bool
	Search(key int32) (record.Record, bool)
	RangeScan(lo, hi int32) []record.Record
	Dump(w io.Writer)
	Len() int
}

var (
	// ErrDuplicateKey is returned by hash-table inserts when the key is
	// already live.
	ErrDuplicateKey = errors.New("index: duplicate key")

	// ErrFull is returned by hash-table inserts once every slot holds a
	// live record.
	ErrFull = errors.New("index: table full")
)

// DuplicateKeyError reports the slot at which the conflicting live record was
// found during the probe.
type DuplicateKeyError struct {
	Key  int32
	Slot int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("index: duplicate key %d at slot %d", e.Key, e.Slot)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }
