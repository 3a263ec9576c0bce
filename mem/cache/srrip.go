package cache

import (
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"
)

// SRRIPPolicy implements Static Re-Reference Interval Prediction with Hit
// Priority (SRRIP-HP).
//
// Each slot carries a small re-reference prediction value (RRPV). A freshly
// filled slot is inserted at rpvMax-1, a hit resets it to 0, and eviction
// picks the first candidate whose RRPV equals rpvMax. If no candidate is at
// rpvMax, all candidates are aged by one and the search repeats.
type SRRIPPolicy struct {
	rpvMax  int
	rrpv    []int
	evicted []bool
	log     logrus.FieldLogger
}

// NewSRRIPPolicy creates an SRRIP policy for numLines slots with RRPVs
// saturating at rpvMax. All slots start empty.
func NewSRRIPPolicy(numLines, rpvMax int) (*SRRIPPolicy, error) {
	if numLines <= 0 {
		return nil, fmt.Errorf("%w: numLines must be > 0, got %d",
			ErrInvalidConfig, numLines)
	}

	if rpvMax < 1 {
		return nil, fmt.Errorf("%w: rpvMax must be >= 1, got %d",
			ErrInvalidConfig, rpvMax)
	}

	p := &SRRIPPolicy{
		rpvMax:  rpvMax,
		rrpv:    make([]int, numLines),
		evicted: make([]bool, numLines),
		log:     logrus.StandardLogger(),
	}

	for i := range p.rrpv {
		p.rrpv[i] = rpvMax
		p.evicted[i] = true
	}

	return p, nil
}

// NumLines returns the number of slots tracked by the policy.
func (p *SRRIPPolicy) NumLines() int {
	return len(p.rrpv)
}

// RPVMax returns the saturation value of the RRPVs.
func (p *SRRIPPolicy) RPVMax() int {
	return p.rpvMax
}

// RRPV returns the current re-reference prediction value of a slot.
func (p *SRRIPPolicy) RRPV(slot int) (int, error) {
	if err := p.checkSlot(slot); err != nil {
		return 0, err
	}

	return p.rrpv[slot], nil
}

// IsEvicted tells if the slot has been evicted and not filled again since.
func (p *SRRIPPolicy) IsEvicted(slot int) (bool, error) {
	if err := p.checkSlot(slot); err != nil {
		return false, err
	}

	return p.evicted[slot], nil
}

// Update records an access to the slot. The first access after an eviction
// is an insertion and sets the RRPV to rpvMax-1. Any other access is a hit
// and promotes the slot to RRPV 0.
func (p *SRRIPPolicy) Update(slot int, _ *AccessContext) error {
	if err := p.checkSlot(slot); err != nil {
		return err
	}

	if p.evicted[slot] {
		p.rrpv[slot] = p.rpvMax - 1
		p.evicted[slot] = false

		return nil
	}

	p.rrpv[slot] = 0

	return nil
}

// Replaced marks the content of the slot as evicted.
func (p *SRRIPPolicy) Replaced(slot int) error {
	if err := p.checkSlot(slot); err != nil {
		return err
	}

	p.rrpv[slot] = p.rpvMax
	p.evicted[slot] = true

	return nil
}

// Rank returns the first candidate whose score reaches rpvMax, aging the
// candidates until one does. Slots that the oracle reports as invalid score
// rpvMax regardless of their RRPV. A nil oracle treats every slot as valid.
//
// Aging saturates at rpvMax, so Rank returns after at most rpvMax rounds.
func (p *SRRIPPolicy) Rank(
	_ *AccessContext,
	candidates iter.Seq[int],
	oracle ValidityOracle,
) (int, error) {
	slots, err := collectCandidates(candidates, len(p.rrpv))
	if err != nil {
		return -1, err
	}

	for round := 0; ; round++ {
		for _, s := range slots {
			if p.score(s, oracle) == p.rpvMax {
				p.log.WithFields(logrus.Fields{
					"victim":     s,
					"rrpv":       p.rrpv[s],
					"agingRound": round,
				}).Debug("srrip victim selected")

				return s, nil
			}
		}

		p.age(slots)
	}
}

func (p *SRRIPPolicy) score(slot int, oracle ValidityOracle) int {
	if !isValid(oracle, slot) {
		return p.rpvMax
	}

	return p.rrpv[slot]
}

func (p *SRRIPPolicy) age(slots []int) {
	for _, s := range slots {
		if p.rrpv[s] < p.rpvMax {
			p.rrpv[s]++
		}
	}
}

func (p *SRRIPPolicy) checkSlot(slot int) error {
	if slot < 0 || slot >= len(p.rrpv) {
		return slotOutOfRangeError(slot, len(p.rrpv))
	}

	return nil
}
