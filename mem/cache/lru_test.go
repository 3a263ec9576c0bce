package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRUPolicy", func() {
	var (
		p        *LRUPolicy
		allValid ValidityOracle
	)

	BeforeEach(func() {
		var err error
		p, err = NewLRUPolicy(4)
		Expect(err).ToNot(HaveOccurred())

		allValid = ValidityFunc(func(int) bool { return true })
	})

	It("should reject an empty cache", func() {
		_, err := NewLRUPolicy(0)
		Expect(err).To(MatchError(ErrInvalidConfig))
	})

	It("should evict the least recently used slot", func() {
		for _, s := range []int{0, 1, 2, 3, 0, 2} {
			Expect(p.Update(s, nil)).To(Succeed())
		}

		victim, err := p.Rank(nil, RangeCandidates(0, 4), allValid)

		Expect(err).ToNot(HaveOccurred())
		Expect(victim).To(Equal(1))
	})

	It("should prefer invalid slots", func() {
		for s := 0; s < 4; s++ {
			Expect(p.Update(s, nil)).To(Succeed())
		}

		victim, err := p.Rank(nil, RangeCandidates(0, 4),
			ValidityFunc(func(slot int) bool { return slot != 2 }))

		Expect(err).ToNot(HaveOccurred())
		Expect(victim).To(Equal(2))
	})

	It("should treat replaced slots as the oldest", func() {
		for s := 0; s < 4; s++ {
			Expect(p.Update(s, nil)).To(Succeed())
		}
		Expect(p.Replaced(3)).To(Succeed())

		victim, err := p.Rank(nil, RangeCandidates(0, 4), allValid)

		Expect(err).ToNot(HaveOccurred())
		Expect(victim).To(Equal(3))
	})

	It("should report bad arguments", func() {
		Expect(p.Update(4, nil)).To(MatchError(ErrSlotOutOfRange))
		Expect(p.Replaced(-1)).To(MatchError(ErrSlotOutOfRange))

		_, err := p.Rank(nil, SliceCandidates([]int{}), allValid)
		Expect(err).To(MatchError(ErrNoCandidates))
	})
})
