package ecs

import (
	"math/bits"

	"github.com/rotisserie/eris"
)

// DefaultIndexBits gives 4 index slots of 62 bits each (248 component types).
const DefaultIndexBits = 2

// MaxIndexBits bounds the per-entity mask array to 65536 words.
const MaxIndexBits = 16

const wordBits = 64

// ComponentID packs an index slot in the low IndexBits bits and a single mask
// bit in the remaining high bits.
type ComponentID uint64

// Layout fixes the split between index bits and mask bits of a ComponentID.
// Wider index bits allow more component types but every installed entity pays
// MaxIndex+1 mask words regardless of how many components it carries.
type Layout struct {
	indexBits uint
}

func NewLayout(indexBits int) (Layout, error) {
	if indexBits < 0 || indexBits > MaxIndexBits {
		return Layout{}, eris.Wrapf(ErrInvalidLayout, "got %d, want 0..%d", indexBits, MaxIndexBits)
	}
	return Layout{indexBits: uint(indexBits)}, nil
}

// DefaultLayout returns the layout for DefaultIndexBits.
func DefaultLayout() Layout { return Layout{indexBits: DefaultIndexBits} }

func (l Layout) IndexBits() int { return int(l.indexBits) }

// MaxIndex is the highest index slot.
func (l Layout) MaxIndex() uint64 { return 1<<l.indexBits - 1 }

// Words is the length of every entity mask array.
func (l Layout) Words() int { return int(l.MaxIndex()) + 1 }

// BitsPerWord is the number of component bits available in each index slot.
func (l Layout) BitsPerWord() int { return wordBits - int(l.indexBits) }

// Capacity is the total number of distinct component types the layout can tag.
func (l Layout) Capacity() int { return l.Words() * l.BitsPerWord() }

// Pack builds the identifier for bit offset off inside index slot idx.
func (l Layout) Pack(idx uint64, off uint) ComponentID {
	return ComponentID(idx | 1<<(l.indexBits+off))
}

// Index returns the mask word the identifier lives in.
func (id ComponentID) Index(l Layout) uint64 { return uint64(id) & l.MaxIndex() }

// Bit returns the identifier with the index field cleared, i.e. the mask the
// entity word is tested against.
func (id ComponentID) Bit(l Layout) uint64 { return uint64(id) &^ l.MaxIndex() }

// Offset returns the position of the mask bit within the component-bit field.
func (id ComponentID) Offset(l Layout) int {
	return bits.TrailingZeros64(id.Bit(l)) - int(l.indexBits)
}
