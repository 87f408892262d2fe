package bptree

import "github.com/ghduque/indexlab/internal/record"

// capacity holds the node-size constants derived from the configured page
// budget. All derivation is integer math over the nominal byte widths in the
// record package; no real pages are allocated.
type capacity struct {
	pageSize int

	leafMaxKeys int
	leafMinKeys int

	internalOrder   int
	internalMaxKeys int
	internalMinKeys int

	// clampedFrom is the rejected page size when the request was below the
	// safety minimum, 0 otherwise.
	clampedFrom int
}

// minPageBytes is the smallest page that can hold two leaf entries. Anything
// smaller cannot guarantee that a split produces two nonempty siblings.
func minPageBytes(s record.Schema) int {
	return 2 * (record.PointerSize + record.KeySize + s.RecordSize())
}

// planCapacity derives leaf and internal node bounds from the page budget,
// clamping the page size up to the safety minimum first.
func planCapacity(s record.Schema, pageSize int) capacity {
	var c capacity
	if min := minPageBytes(s); pageSize < min {
		c.clampedFrom = pageSize
		pageSize = min
	}
	c.pageSize = pageSize

	entrySize := record.KeySize + s.RecordSize()
	c.leafMaxKeys = (pageSize - record.PointerSize) / entrySize
	if c.leafMaxKeys < 1 {
		c.leafMaxKeys = 1
	}
	c.leafMinKeys = ceilHalf(c.leafMaxKeys)

	// Order m satisfies m*pointer + (m-1)*key <= pageSize.
	c.internalOrder = (pageSize + record.KeySize) / (record.PointerSize + record.KeySize)
	if c.internalOrder < 3 {
		c.internalOrder = 3
	}
	c.internalMaxKeys = c.internalOrder - 1
	c.internalMinKeys = ceilHalf(c.internalOrder) - 1

	return c
}

func ceilHalf(n int) int { return (n + 1) / 2 }
