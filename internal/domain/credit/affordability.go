package credit

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"origination-engine/internal/pkg/apperrors"
)

// ComputeInstallment returns the fixed monthly payment amortizing principal
// over tenureMonths at the given annual percentage rate.
//
// installment = P * r * (1+r)^n / ((1+r)^n - 1), r = annualRate / 1200.
// At r == 0 the formula degenerates to 0/0, so the straight-line split
// principal/n applies instead.
func ComputeInstallment(principal, annualRatePercent float64, tenureMonths int) (float64, error) {
	if principal <= 0 {
		return 0, fmt.Errorf("%w: principal must be positive", apperrors.ErrInvalidArgument)
	}
	if annualRatePercent < 0 {
		return 0, fmt.Errorf("%w: annual rate cannot be negative", apperrors.ErrInvalidArgument)
	}
	if tenureMonths < 1 {
		return 0, fmt.Errorf("%w: tenure months must be at least 1", apperrors.ErrInvalidArgument)
	}

	monthlyRate := annualRatePercent / 1200
	if monthlyRate == 0 {
		return principal / float64(tenureMonths), nil
	}

	growth := math.Pow(1+monthlyRate, float64(tenureMonths))
	denominator := growth - 1
	if denominator == 0 || math.IsInf(growth, 0) {
		return 0, fmt.Errorf("%w: installment formula degenerate for rate %.4f over %d months",
			apperrors.ErrDegenerateComputation, annualRatePercent, tenureMonths)
	}

	return principal * monthlyRate * growth / denominator, nil
}

// ComputeDTI returns the combined debt obligations as a percentage of
// monthly income, rounded half-up to one decimal place.
func ComputeDTI(existingEMI, newEMI, monthlyIncome float64) (float64, error) {
	if monthlyIncome <= 0 {
		return 0, fmt.Errorf("%w: monthly income must be positive", apperrors.ErrInvalidArgument)
	}
	if existingEMI < 0 || newEMI < 0 {
		return 0, fmt.Errorf("%w: installment amounts cannot be negative", apperrors.ErrInvalidArgument)
	}

	ratio := (existingEMI + newEMI) / monthlyIncome * 100
	return roundToOneDecimal(ratio), nil
}

// roundToOneDecimal applies the documented half-up policy at the tenths
// digit. decimal.Round rounds half away from zero, which matches for the
// non-negative values produced here.
func roundToOneDecimal(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return rounded
}
