package money_test

import (
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/expense-ledger/internal/core/money"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func asStrings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.StringFixed(2)
	}
	return out
}

var _ = Describe("Split", func() {
	It("should put the rounding remainder on the last share", func() {
		shares, err := money.Split(amount("100.00"), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(asStrings(shares)).To(Equal([]string{"33.33", "33.33", "33.34"}))
	})

	It("should return the total untouched for a single share", func() {
		shares, err := money.Split(amount("59.90"), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(asStrings(shares)).To(Equal([]string{"59.90"}))
	})

	It("should split evenly when there is no remainder", func() {
		shares, err := money.Split(amount("120.00"), 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(asStrings(shares)).To(Equal([]string{"30.00", "30.00", "30.00", "30.00"}))
	})

	It("should give zero shares and a full last share when total is below count minor units", func() {
		shares, err := money.Split(amount("0.02"), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(asStrings(shares)).To(Equal([]string{"0.00", "0.00", "0.02"}))
	})

	It("should reject a count below one", func() {
		shares, err := money.Split(amount("10.00"), 0)
		Expect(err).To(MatchError(money.ErrInvalidShareCount))
		Expect(shares).To(BeNil())
	})

	DescribeTable("keeps the sum exact and the shares equal but the last",
		func(total string, count int) {
			t := amount(total)
			shares, err := money.Split(t, count)
			Expect(err).NotTo(HaveOccurred())
			Expect(shares).To(HaveLen(count))
			Expect(money.Sum(shares...).Equal(t)).To(BeTrue(), "sum %s != %s", money.Sum(shares...), t)

			for _, s := range shares[:count-1] {
				Expect(s.Equal(shares[0])).To(BeTrue())
			}

			diffCents := shares[count-1].Sub(shares[0]).Shift(2).IntPart()
			Expect(diffCents).To(BeNumerically(">=", 0))
			Expect(diffCents).To(BeNumerically("<=", count-1))
		},
		Entry("100.00 / 3", "100.00", 3),
		Entry("0.01 / 1", "0.01", 1),
		Entry("1.00 / 7", "1.00", 7),
		Entry("999.99 / 12", "999.99", 12),
		Entry("1234.56 / 120", "1234.56", 120),
		Entry("10.00 / 120", "10.00", 120),
		Entry("0.99 / 100", "0.99", 100),
		Entry("35000.10 / 24", "35000.10", 24),
	)
})

var _ = Describe("Percentage", func() {
	It("should return zero for a zero base", func() {
		Expect(money.Percentage(amount("50"), decimal.Zero).IsZero()).To(BeTrue())
	})

	It("should round to two places", func() {
		Expect(money.Percentage(amount("33.34"), amount("200.00")).StringFixed(2)).To(Equal("16.67"))
	})

	It("should exceed one hundred when over the base", func() {
		Expect(money.Percentage(amount("250"), amount("200")).StringFixed(2)).To(Equal("125.00"))
	})
})
