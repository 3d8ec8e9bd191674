package rangetable

import (
	"fmt"
	"math/bits"

	"github.com/henderiw/intervals/pkg/interval"
)

const idBitSize = 64

// Block is an aligned run of 2^(64-Length) ids starting at ID, written
// "ID/Length" the way an address prefix is.
type Block struct {
	ID     uint64
	Length uint8
}

func (b Block) String() string {
	return fmt.Sprintf("%d/%d", b.ID, b.Length)
}

// Last returns the highest id of b.
func (b Block) Last() uint64 {
	if b.Length == 0 {
		return ^uint64(0)
	}
	return b.ID | (^uint64(0) >> b.Length)
}

// Interval returns the ids b covers. Ids above the int64 range are cut off.
func (b Block) Interval() Interval {
	last := b.Last()
	if last > 1<<63-1 {
		last = 1<<63 - 1
	}
	if b.ID > last {
		return Interval{}
	}
	return interval.New[int64, interval.Integers[int64]](int64(b.ID), int64(last), interval.BoundClosed, interval.BoundClosed)
}

// Blocks returns the smallest ascending list of blocks covering the
// non-negative ids of i. An interval unbounded above stops at the largest
// int64.
func Blocks(i Interval) []Block {
	i = i.Intersection(interval.AtLeast[int64, interval.Integers[int64]](0))
	if i.IsEmpty() {
		return nil
	}
	hi := int64(1<<63 - 1)
	if i.Right() != interval.BoundUnbound {
		hi = i.Max()
	}
	return appendBlocks(nil, uint64(i.Min()), uint64(hi))
}

// SetBlocks returns the blocks of every interval of s in ascending order.
func SetBlocks(s *Set) []Block {
	var out []Block
	for i := range s.All() {
		out = append(out, Blocks(i)...)
	}
	return out
}

func appendBlocks(dst []Block, a, b uint64) []Block {
	common := uint8(bits.LeadingZeros64(a ^ b))
	if common == idBitSize {
		return append(dst, Block{ID: a, Length: common})
	}
	// a and b only differ in the bits below common: a single block when a
	// has them all clear and b all set.
	rest := ^uint64(0) >> common
	if a&rest == 0 && b&rest == rest {
		return append(dst, Block{ID: a, Length: common})
	}
	// Otherwise split at the first differing bit and do both halves.
	half := uint64(1) << (idBitSize - 1 - common)
	dst = appendBlocks(dst, a, a|(half-1))
	dst = appendBlocks(dst, b&^(half-1), b)
	return dst
}
