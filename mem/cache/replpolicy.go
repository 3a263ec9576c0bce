package cache

import (
	"iter"
	"slices"
)

//go:generate mockgen -destination "mock_cache_test.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/rrip/mem/cache ValidityOracle,ReplPolicy

// AccessContext describes the memory access that triggers a policy call.
// Policies receive it for every update and ranking, but none of the current
// policies inspect it.
type AccessContext struct {
	ID      string
	PID     uint32
	Address uint64
	IsWrite bool
}

// A ValidityOracle reports whether a slot currently holds valid data. The
// cache controller owns the valid bits and lends the oracle to the policy for
// the duration of a single Rank call.
type ValidityOracle interface {
	IsValid(slot int) bool
}

// ValidityFunc adapts a plain function to a ValidityOracle.
type ValidityFunc func(slot int) bool

// IsValid calls f(slot).
func (f ValidityFunc) IsValid(slot int) bool {
	return f(slot)
}

// A ReplPolicy keeps per-slot replacement state and picks eviction victims.
//
// The controller calls Update whenever a slot is hit or filled, Replaced right
// after the content of a slot has been evicted, and Rank when it needs a
// victim among a set of candidate slots. Candidates are visited in order and
// the order decides ties.
type ReplPolicy interface {
	Update(slot int, access *AccessContext) error
	Replaced(slot int) error
	Rank(
		access *AccessContext,
		candidates iter.Seq[int],
		oracle ValidityOracle,
	) (int, error)
}

// SliceCandidates returns a candidate sequence that visits slots in order.
func SliceCandidates(slots []int) iter.Seq[int] {
	return slices.Values(slots)
}

// RangeCandidates returns a candidate sequence over the slots [lo, hi).
func RangeCandidates(lo, hi int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for s := lo; s < hi; s++ {
			if !yield(s) {
				return
			}
		}
	}
}

func isValid(oracle ValidityOracle, slot int) bool {
	if oracle == nil {
		return true
	}

	return oracle.IsValid(slot)
}

// collectCandidates materializes the candidate sequence once and checks every
// slot against numLines, so that later passes never see an invalid slot.
func collectCandidates(candidates iter.Seq[int], numLines int) ([]int, error) {
	var slots []int

	if candidates != nil {
		for s := range candidates {
			if s < 0 || s >= numLines {
				return nil, slotOutOfRangeError(s, numLines)
			}

			slots = append(slots, s)
		}
	}

	if len(slots) == 0 {
		return nil, ErrNoCandidates
	}

	return slots, nil
}
