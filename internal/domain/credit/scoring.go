package credit

import (
	"origination-engine/internal/domain/customer"
)

type Category string

const (
	CategoryExcellent Category = "EXCELLENT"
	CategoryGood      Category = "GOOD"
	CategoryFair      Category = "FAIR"
	CategoryPoor      Category = "POOR"
)

// scoreTiers is the single ordered threshold table shared by the category
// assignment and the recommendation mapper. Boundaries are inclusive on the
// minimum, evaluated high to low, first match wins.
var scoreTiers = []struct {
	Min      float64
	Category Category
}{
	{0.75, CategoryExcellent},
	{0.60, CategoryGood},
	{0.45, CategoryFair},
	{0.00, CategoryPoor},
}

func categoryFor(totalScore float64) Category {
	for _, tier := range scoreTiers {
		if totalScore >= tier.Min {
			return tier.Category
		}
	}
	return CategoryPoor
}

// ScoreFactors holds the five weighted components. Each is individually
// capped (0.4 / 0.2 / 0.15 / 0.1 / 0.15) so the sum stays within [0, 1].
type ScoreFactors struct {
	ScoreWeight       float64 `json:"score_weight"`
	DTIWeight         float64 `json:"dti_weight"`
	UtilizationWeight float64 `json:"utilization_weight"`
	InquiryWeight     float64 `json:"inquiry_weight"`
	HistoryWeight     float64 `json:"history_weight"`
}

type ScoreBreakdown struct {
	Factors        ScoreFactors   `json:"factors"`
	TotalScore     float64        `json:"total_score"`
	Category       Category       `json:"category"`
	Recommendation Recommendation `json:"recommendation"`
}

// Score combines the bureau report and the customer's obligations into a
// normalized risk score. A nil or zero-income profile is scored at the
// worst-case DTI of 100 rather than dividing by zero.
func Score(report *CreditReport, profile *customer.Profile) ScoreBreakdown {
	currentDTI := 100.0
	if profile != nil && profile.MonthlyIncome > 0 {
		currentDTI = profile.CurrentMonthlyEMI / profile.MonthlyIncome * 100
	}

	factors := ScoreFactors{
		ScoreWeight:       min(float64(report.CibilScore)/1000, 0.4),
		DTIWeight:         max(0, (60-currentDTI)/60*0.2),
		UtilizationWeight: max(0, (1-report.UtilizationRatio/100)*0.15),
		InquiryWeight:     max(0, (1-float64(report.InquiriesLast6M)/6)*0.1),
	}
	if report.DefaultsCount == 0 {
		factors.HistoryWeight = 0.15
	}

	total := factors.ScoreWeight + factors.DTIWeight + factors.UtilizationWeight +
		factors.InquiryWeight + factors.HistoryWeight

	return ScoreBreakdown{
		Factors:        factors,
		TotalScore:     total,
		Category:       categoryFor(total),
		Recommendation: RecommendationFor(total),
	}
}
