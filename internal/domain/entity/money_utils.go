package entity

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/finance-dashboard/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

var (
	hundred        = decimal.NewFromInt(100)
	maxAmountCents = decimal.NewFromInt(math.MaxInt64 / 1000)
)

// ValidateAndConvertAmount parses a user supplied amount into cents.
// A comma is accepted as decimal separator when no dot is present ("10,50").
// The amount must be strictly positive and carry at most two decimals.
func ValidateAndConvertAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	if !strings.Contains(amount, ".") {
		amount = strings.Replace(amount, ",", ".", 1)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if !value.IsPositive() {
		return 0, errs.ErrNegativeAmount
	}
	if value.Exponent() < -MaxDecimalPlaces && !value.Equal(value.Truncate(MaxDecimalPlaces)) {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	cents := value.Mul(hundred)
	if cents.GreaterThan(maxAmountCents) {
		return 0, errs.ErrAmountOverflow
	}
	return cents.IntPart(), nil
}

// AmountInCentsToString converts integer amount to a decimal string
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func AmountInCentsToString(amountInCents int64) string {
	return decimal.New(amountInCents, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// SplitInstallments divides totalCents into count installment amounts.
// Every installment but the last is round(total/count) to the cent; the last one
// absorbs the rounding remainder so the amounts always sum to totalCents.
func SplitInstallments(totalCents int64, count int) ([]int64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidInstallmentCount, count)
	}
	if totalCents <= 0 {
		return nil, errs.ErrNegativeAmount
	}

	total := decimal.New(totalCents, -MaxDecimalPlaces)
	each := total.Div(decimal.NewFromInt(int64(count))).Round(MaxDecimalPlaces).Mul(hundred).IntPart()
	last := totalCents - each*int64(count-1)
	if each <= 0 || last <= 0 {
		return nil, fmt.Errorf("%w: %s cannot be split into %d installments",
			errs.ErrInvalidAmount, AmountInCentsToString(totalCents), count)
	}

	amounts := make([]int64, count)
	for i := range amounts {
		amounts[i] = each
	}
	amounts[count-1] = last
	return amounts, nil
}

// PercentageChange returns the variation of current relative to |previous| in percent.
// A zero previous value yields 0.
func PercentageChange(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	delta := decimal.NewFromInt(current - previous)
	base := decimal.NewFromInt(previous).Abs()
	return delta.Div(base).Mul(hundred).Round(2).InexactFloat64()
}
