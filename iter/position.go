/*
Package iter implements revertible, position-savable iterators over
strings, element slices and streaming rune sources.

Every iterator exposes the same small contract: Peek/Next read without
and with advancing, Advance skips ahead, Save/Revert/RemoveSave push and
pop a stack of positions the iterator can snap back to, and Position
returns an immutable, comparable value identifying the current spot.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package iter

import (
	"fmt"

	"github.com/emirpasic/gods/utils"
)

// Position identifies a spot in some input. For indexable sources
// (strings, element slices) Chunk is always 0 and Offset is the element
// index. For streaming sources Chunk is the index of the loaded chunk and
// Offset the offset within it; positions order lexicographically by
// (Chunk, Offset).
type Position struct {
	Chunk  int
	Offset int
}

func (p Position) String() string {
	if p.Chunk == 0 {
		return fmt.Sprintf("%d", p.Offset)
	}
	return fmt.Sprintf("%d.%d", p.Chunk, p.Offset)
}

// Less reports whether p orders strictly before other.
func (p Position) Less(other Position) bool {
	if p.Chunk != other.Chunk {
		return p.Chunk < other.Chunk
	}
	return p.Offset < other.Offset
}

// PositionComparator is a gods/utils.Comparator over Position values,
// used by the pivot map (package parse) to key an ordered treemap.
func PositionComparator(a, b interface{}) int {
	pa, pb := a.(Position), b.(Position)
	switch {
	case pa.Chunk != pb.Chunk:
		return utils.IntComparator(pa.Chunk, pb.Chunk)
	default:
		return utils.IntComparator(pa.Offset, pb.Offset)
	}
}
