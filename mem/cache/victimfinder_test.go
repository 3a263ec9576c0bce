package cache

import (
	"iter"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("PolicyVictimFinder", func() {
	var (
		mockCtrl *gomock.Controller
		policy   *MockReplPolicy
		finder   *PolicyVictimFinder
		set      *Set
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		policy = NewMockReplPolicy(mockCtrl)
		finder = NewPolicyVictimFinder(policy)
		set = NewSet(2, 4)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should assign slots by set and way", func() {
		Expect(set.Blocks).To(HaveLen(4))
		Expect(set.Blocks[0].SlotID).To(Equal(8))
		Expect(set.Blocks[3].SlotID).To(Equal(11))
		Expect(set.Blocks[3].WayID).To(Equal(3))
		Expect(finder.Policy()).To(BeIdenticalTo(policy))
	})

	It("should offer unlocked blocks in way order", func() {
		set.Blocks[1].IsLocked = true
		set.Blocks[2].IsValid = true

		policy.EXPECT().
			Rank(gomock.Nil(), gomock.Any(), set).
			DoAndReturn(func(
				_ *AccessContext,
				candidates iter.Seq[int],
				oracle ValidityOracle,
			) (int, error) {
				Expect(slices.Collect(candidates)).To(Equal([]int{8, 10, 11}))
				Expect(oracle.IsValid(10)).To(BeTrue())
				Expect(oracle.IsValid(11)).To(BeFalse())
				return 10, nil
			})

		victim := finder.FindVictim(set)

		Expect(victim).To(BeIdenticalTo(set.Blocks[2]))
	})

	It("should return nil when the policy cannot rank", func() {
		for _, b := range set.Blocks {
			b.IsLocked = true
		}

		policy.EXPECT().
			Rank(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(-1, ErrNoCandidates)

		Expect(finder.FindVictim(set)).To(BeNil())
	})

	It("should forward block events to the policy", func() {
		access := &AccessContext{Address: 0x1000}
		b := set.Blocks[1]

		policy.EXPECT().Update(9, access).Times(2)
		policy.EXPECT().Replaced(9)

		Expect(finder.OnFill(b, access)).To(Succeed())
		Expect(finder.OnHit(b, access)).To(Succeed())
		Expect(finder.OnEvict(b)).To(Succeed())
	})

	Context("with an SRRIP policy", func() {
		BeforeEach(func() {
			p, err := NewSRRIPPolicy(16, 3)
			Expect(err).ToNot(HaveOccurred())
			finder = NewPolicyVictimFinder(p)
		})

		It("should pick empty blocks first", func() {
			set.Blocks[0].IsValid = true
			Expect(finder.OnFill(set.Blocks[0], nil)).To(Succeed())

			Expect(finder.FindVictim(set)).To(BeIdenticalTo(set.Blocks[1]))
		})

		It("should skip locked blocks", func() {
			for _, b := range set.Blocks {
				b.IsValid = true
				Expect(finder.OnFill(b, nil)).To(Succeed())
			}
			Expect(finder.OnHit(set.Blocks[1], nil)).To(Succeed())
			set.Blocks[0].IsLocked = true

			Expect(finder.FindVictim(set)).To(BeIdenticalTo(set.Blocks[2]))
		})

		It("should return nil if all blocks are locked", func() {
			for _, b := range set.Blocks {
				b.IsLocked = true
			}

			Expect(finder.FindVictim(set)).To(BeNil())
		})
	})
})

var _ = Describe("Set", func() {
	It("should look up valid blocks by tag", func() {
		set := NewSet(0, 2)
		set.Blocks[1].Tag = 0x40
		set.Blocks[1].IsValid = true

		b, found := set.Lookup(0x40)
		Expect(found).To(BeTrue())
		Expect(b).To(BeIdenticalTo(set.Blocks[1]))

		set.Blocks[1].IsValid = false
		_, found = set.Lookup(0x40)
		Expect(found).To(BeFalse())
	})

	It("should report slots outside the set as invalid", func() {
		set := NewSet(1, 2)
		set.Blocks[0].IsValid = true

		Expect(set.IsValid(2)).To(BeTrue())
		Expect(set.IsValid(0)).To(BeFalse())
		Expect(set.IsValid(4)).To(BeFalse())
	})
})
