package cache

import (
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("should build an SRRIP policy with 2-bit RRPVs by default", func() {
		p, err := MakeBuilder().WithNumLines(8).Build()

		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&SRRIPPolicy{}))
		Expect(p.(*SRRIPPolicy).RPVMax()).To(Equal(3))
		Expect(p.(*SRRIPPolicy).NumLines()).To(Equal(8))
	})

	It("should build an LRU policy", func() {
		p, err := MakeBuilder().
			WithPolicy(PolicyLRU).
			WithNumLines(8).
			Build()

		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&LRUPolicy{}))
	})

	It("should validate the configuration", func() {
		_, err := MakeBuilder().Build()
		Expect(err).To(MatchError(ErrInvalidConfig))

		_, err = MakeBuilder().WithNumLines(4).WithRPVMax(0).Build()
		Expect(err).To(MatchError(ErrInvalidConfig))

		_, err = MakeBuilder().WithNumLines(4).WithPolicy(PolicyKind(42)).Build()
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should log victim selections to the given logger", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		p, err := MakeBuilder().
			WithNumLines(2).
			WithRPVMax(7).
			WithLogger(logger).
			Build()
		Expect(err).ToNot(HaveOccurred())

		victim, err := p.Rank(nil, RangeCandidates(0, 2), nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(victim).To(Equal(0))

		entry := hook.LastEntry()
		Expect(entry).ToNot(BeNil())
		Expect(entry.Level).To(Equal(logrus.DebugLevel))
		Expect(entry.Data).To(HaveKeyWithValue("victim", 0))
		Expect(entry.Data).To(HaveKeyWithValue("agingRound", 0))
	})

	DescribeTable("ParsePolicyKind",
		func(name string, kind PolicyKind) {
			Expect(ParsePolicyKind(name)).To(Equal(kind))
		},
		Entry("srrip", "srrip", PolicySRRIP),
		Entry("upper case", "SRRIP", PolicySRRIP),
		Entry("lru", "lru", PolicyLRU),
	)

	It("should reject unknown policy names", func() {
		_, err := ParsePolicyKind("mru")
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})
})
