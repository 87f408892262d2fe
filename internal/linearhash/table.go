package linearhash

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ghduque/indexlab/internal/index"
	"github.com/ghduque/indexlab/internal/record"
)

// slotState is the per-slot lifecycle tag. A tombstone marks a logically
// deleted slot; it keeps probe chains intact and is reusable by inserts.
type slotState uint8

const (
	slotEmpty slotState = iota
	slotLive
	slotTombstone
)

type slot struct {
	state slotState
	rec   record.Record
}

// Table is an open-addressed hash table with linear probing and lazy
// deletion. The slot array is sized once from a total-byte budget and never
// grows.
type Table struct {
	schema record.Schema
	slots  []slot
	count  int
}

// New builds a table whose slot count is derived from the byte budget:
// totalBytes / recordSize, floored at one slot.
func New(schema record.Schema, totalBytes int) *Table {
	n := totalBytes / schema.RecordSize()
	if n < 1 {
		n = 1
	}
	t := &Table{
		schema: schema,
		slots:  make([]slot, n),
	}
	slog.Info("linearhash: initialized",
		"totalBytes", totalBytes,
		"numFields", schema.NumFields,
		"slotCount", n,
	)
	return t
}

// SlotCount reports the fixed size of the slot array.
func (t *Table) SlotCount() int { return len(t.slots) }

// Len reports the number of live records.
func (t *Table) Len() int { return t.count }

// home returns the probe start for key. The Euclidean remainder keeps
// negative keys inside [0, slotCount).
func (t *Table) home(key int32) int {
	h := int(key) % len(t.slots)
	if h < 0 {
		h += len(t.slots)
	}
	return h
}

// Insert stores one record. It rejects a wrong-arity record, a full table,
// and a key that is live on the probe path. The first empty or tombstone slot
// on the path is claimed; the probe does not continue past a tombstone to
// look for a deeper live duplicate.
func (t *Table) Insert(r record.Record) error {
	if err := t.schema.Validate(r); err != nil {
		return err
	}
	if t.count == len(t.slots) {
		return index.ErrFull
	}

	key := r.Key()
	i := t.home(key)
	start := i

	for t.slots[i].state == slotLive {
		if t.slots[i].rec.Key() == key {
			return &index.DuplicateKeyError{Key: key, Slot: i}
		}
		i = (i + 1) % len(t.slots)
		if i == start {
			// count < slotCount guarantees a free slot, so a full
			// wrap can only mean every slot is live.
			return fmt.Errorf("%w (probe loop)", index.ErrFull)
		}
	}

	t.slots[i] = slot{state: slotLive, rec: r.Clone()}
	t.count++
	slog.Debug("linearhash.Insert", "key", key, "slot", i, "count", t.count)
	return nil
}

// probe walks the chain for key and returns the index of its live slot, or
// -1. It stops at the first empty slot: a live record for this key can never
// sit past one, since deletion only ever writes tombstones.
func (t *Table) probe(key int32) int {
	i := t.home(key)
	start := i

	for t.slots[i].state != slotEmpty {
		if t.slots[i].state == slotLive && t.slots[i].rec.Key() == key {
			return i
		}
		i = (i + 1) % len(t.slots)
		if i == start {
			break
		}
	}
	return -1
}

// Search returns the live record stored under key, or false.
func (t *Table) Search(key int32) (record.Record, bool) {
	if i := t.probe(key); i >= 0 {
		return t.slots[i].rec, true
	}
	return nil, false
}

// Remove tombstones the slot holding key. It reports false when the key is
// not live.
func (t *Table) Remove(key int32) bool {
	i := t.probe(key)
	if i < 0 {
		return false
	}
	t.slots[i] = slot{state: slotTombstone}
	t.count--
	slog.Debug("linearhash.Remove", "key", key, "slot", i, "count", t.count)
	return true
}

// RangeScan returns every live record with lo <= key <= hi, sorted ascending
// by key. A hash table has no key order, so this is a full scan.
func (t *Table) RangeScan(lo, hi int32) []record.Record {
	var out []record.Record
	for _, s := range t.slots {
		if s.state != slotLive {
			continue
		}
		if k := s.rec.Key(); lo <= k && k <= hi {
			out = append(out, s.rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Dump writes the slot array to w in index order, one line per slot.
func (t *Table) Dump(w io.Writer) {
	fmt.Fprintln(w, "--- Hash table structure ---")
	fmt.Fprintf(w, "occupancy: %d/%d\n", t.count, len(t.slots))
	for i, s := range t.slots {
		switch s.state {
		case slotEmpty:
			fmt.Fprintf(w, "[%03d]: [ free ]\n", i)
		case slotTombstone:
			fmt.Fprintf(w, "[%03d]: [ removed ]\n", i)
		default:
			fmt.Fprintf(w, "[%03d]: %v\n", i, s.rec)
		}
	}
}
