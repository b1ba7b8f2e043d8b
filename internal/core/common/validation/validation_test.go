package validation_test

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func detailFields(err *internal.AppError) []string {
	details, ok := err.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	fields := make([]string, len(details.Errors))
	for i, e := range details.Errors {
		fields[i] = e.Field
	}
	return fields
}

var _ = Describe("ValidationBuilder", func() {
	It("should pass when every field is valid", func() {
		v := validation.NewValidator()
		v.Field("description", "Groceries").Required().MaxLength(10)
		v.Field("amount", decimal.RequireFromString("10.50")).PositiveDecimal(internal.ErrCodeInvalidAmount)
		v.Field("purchase_date", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)).Required()
		Expect(v.Validate()).To(BeNil())
	})

	It("should collect one error per failing field", func() {
		v := validation.NewValidator()
		v.Field("description", "").Required().MaxLength(3)
		v.Field("amount", decimal.Zero).PositiveDecimal(internal.ErrCodeInvalidAmount)
		v.Field("last_four_digits", "12a4").Digits(4)

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.StatusCode).To(Equal(400))
		Expect(detailFields(err)).To(Equal([]string{"description", "amount", "last_four_digits"}))
		Expect(err.GetDetailedMessage()).To(ContainSubstring("description is required"))
	})

	It("should reject amounts with more than two decimal places", func() {
		v := validation.NewValidator()
		v.Field("amount", decimal.RequireFromString("1.005")).PositiveDecimal(internal.ErrCodeInvalidAmount)
		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("at most 2 decimal places"))
	})

	It("should accept zero for non-negative amounts", func() {
		v := validation.NewValidator()
		v.Field("amount", decimal.Zero).NonNegativeDecimal(internal.ErrCodeInvalidAmount)
		Expect(v.Validate()).To(BeNil())
	})

	It("should skip nil optional ints in IntRange", func() {
		v := validation.NewValidator()
		var closingDay *int
		v.Field("closing_day", closingDay).IntRange(1, 31, internal.ErrCodeInvalidClosingDay)
		Expect(v.Validate()).To(BeNil())
	})

	It("should enforce OneOf", func() {
		v := validation.NewValidator()
		v.Field("payment_method", "cheque").OneOf([]string{"cash", "pix"}, internal.ErrCodeInvalidMethod)
		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(Equal("payment_method must be one of: cash, pix"))
	})
})

var _ = Describe("ValidatePeriod", func() {
	DescribeTable("rejects out-of-range periods",
		func(year, month int) {
			err := validation.ValidatePeriod(year, month, 2000, 2100)
			Expect(err).NotTo(BeNil())
			Expect(errors.Is(err, internal.ErrInvalidPeriod)).To(BeTrue())
		},
		Entry("month zero", 2025, 0),
		Entry("month thirteen", 2025, 13),
		Entry("year too early", 1999, 5),
		Entry("year too late", 2101, 5),
	)

	It("accepts boundary values", func() {
		Expect(validation.ValidatePeriod(2000, 1, 2000, 2100)).To(BeNil())
		Expect(validation.ValidatePeriod(2100, 12, 2000, 2100)).To(BeNil())
	})
})
