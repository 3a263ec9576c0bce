package cache

import (
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"
)

// LRUPolicy evicts the least recently used candidate. It satisfies the same
// contract as SRRIPPolicy and can be swapped in at any call site.
type LRUPolicy struct {
	clock    uint64
	lastUsed []uint64
	log      logrus.FieldLogger
}

// NewLRUPolicy creates an LRU policy for numLines slots.
func NewLRUPolicy(numLines int) (*LRUPolicy, error) {
	if numLines <= 0 {
		return nil, fmt.Errorf("%w: numLines must be > 0, got %d",
			ErrInvalidConfig, numLines)
	}

	return &LRUPolicy{
		lastUsed: make([]uint64, numLines),
		log:      logrus.StandardLogger(),
	}, nil
}

// Update marks the slot as the most recently used one.
func (p *LRUPolicy) Update(slot int, _ *AccessContext) error {
	if err := p.checkSlot(slot); err != nil {
		return err
	}

	p.clock++
	p.lastUsed[slot] = p.clock

	return nil
}

// Replaced forgets the recency of the slot.
func (p *LRUPolicy) Replaced(slot int) error {
	if err := p.checkSlot(slot); err != nil {
		return err
	}

	p.lastUsed[slot] = 0

	return nil
}

// Rank returns the first invalid candidate if there is one. Otherwise, it
// returns the least recently used candidate, the earliest one on ties.
func (p *LRUPolicy) Rank(
	_ *AccessContext,
	candidates iter.Seq[int],
	oracle ValidityOracle,
) (int, error) {
	slots, err := collectCandidates(candidates, len(p.lastUsed))
	if err != nil {
		return -1, err
	}

	victim := slots[0]
	for _, s := range slots {
		if !isValid(oracle, s) {
			victim = s
			break
		}

		if p.lastUsed[s] < p.lastUsed[victim] {
			victim = s
		}
	}

	p.log.WithField("victim", victim).Debug("lru victim selected")

	return victim, nil
}

func (p *LRUPolicy) checkSlot(slot int) error {
	if slot < 0 || slot >= len(p.lastUsed) {
		return slotOutOfRangeError(slot, len(p.lastUsed))
	}

	return nil
}
