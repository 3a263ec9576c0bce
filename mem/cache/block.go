package cache

// A Block of a cache is the information that is associated with a cache line.
type Block struct {
	SetID    int
	WayID    int
	SlotID   int
	Tag      uint64
	IsValid  bool
	IsLocked bool
	IsDirty  bool
}

// A Set is a list of blocks where a certain piece of memory can be stored.
// Blocks are kept in way order.
type Set struct {
	ID     int
	Blocks []*Block
}

// NewSet creates a set of numWays invalid blocks. The blocks of set s occupy
// the slots [s*numWays, (s+1)*numWays).
func NewSet(setID, numWays int) *Set {
	set := &Set{
		ID:     setID,
		Blocks: make([]*Block, numWays),
	}

	for way := range set.Blocks {
		set.Blocks[way] = &Block{
			SetID:  setID,
			WayID:  way,
			SlotID: setID*numWays + way,
		}
	}

	return set
}

// Lookup finds the valid block that holds the tag.
func (s *Set) Lookup(tag uint64) (*Block, bool) {
	for _, b := range s.Blocks {
		if b.IsValid && b.Tag == tag {
			return b, true
		}
	}

	return nil, false
}

// IsValid reports whether the block in the given slot holds valid data.
// Slots outside the set are reported as invalid.
func (s *Set) IsValid(slot int) bool {
	b := s.blockAt(slot)
	return b != nil && b.IsValid
}

func (s *Set) blockAt(slot int) *Block {
	if len(s.Blocks) == 0 {
		return nil
	}

	way := slot - s.Blocks[0].SlotID
	if way < 0 || way >= len(s.Blocks) {
		return nil
	}

	return s.Blocks[way]
}
