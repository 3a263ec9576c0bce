package cache

import "iter"

// A VictimFinder decides which block should be evicted.
type VictimFinder interface {
	FindVictim(set *Set) *Block
}

// PolicyVictimFinder finds victims in a set with a ReplPolicy. The policy
// tracks blocks by their slot IDs and the set itself tells which blocks are
// valid.
//
// The cache should call OnFill when a block is filled, OnHit when a block is
// hit, and OnEvict after the content of a block is evicted.
type PolicyVictimFinder struct {
	policy ReplPolicy
}

// NewPolicyVictimFinder returns a victim finder that delegates to policy.
func NewPolicyVictimFinder(policy ReplPolicy) *PolicyVictimFinder {
	return &PolicyVictimFinder{policy: policy}
}

// Policy returns the replacement policy behind the victim finder.
func (e *PolicyVictimFinder) Policy() ReplPolicy {
	return e.policy
}

// OnHit should be called by the cache when a block is hit.
func (e *PolicyVictimFinder) OnHit(b *Block, access *AccessContext) error {
	return e.policy.Update(b.SlotID, access)
}

// OnFill should be called by the cache when a block is filled.
func (e *PolicyVictimFinder) OnFill(b *Block, access *AccessContext) error {
	return e.policy.Update(b.SlotID, access)
}

// OnEvict should be called by the cache after the content of a block is
// evicted and before the block is filled again.
func (e *PolicyVictimFinder) OnEvict(b *Block) error {
	return e.policy.Replaced(b.SlotID)
}

// FindVictim returns the block to evict from the set. Locked blocks are never
// offered to the policy. If all the blocks are locked, or the policy fails to
// rank the blocks, FindVictim returns nil.
func (e *PolicyVictimFinder) FindVictim(set *Set) *Block {
	return e.FindVictimWithContext(set, nil)
}

// FindVictimWithContext is FindVictim with the access that causes the
// eviction passed along to the policy.
func (e *PolicyVictimFinder) FindVictimWithContext(
	set *Set,
	access *AccessContext,
) *Block {
	slot, err := e.policy.Rank(access, unlockedSlots(set), set)
	if err != nil {
		return nil
	}

	return set.blockAt(slot)
}

func unlockedSlots(set *Set) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, b := range set.Blocks {
			if b.IsLocked {
				continue
			}

			if !yield(b.SlotID) {
				return
			}
		}
	}
}
