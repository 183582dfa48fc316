package credit

type RecommendationStatus string

const (
	RecommendationFullApproval        RecommendationStatus = "FULL_APPROVAL"
	RecommendationConditionalApproval RecommendationStatus = "CONDITIONAL_APPROVAL"
	RecommendationManualReview        RecommendationStatus = "MANUAL_REVIEW"
	RecommendationDeclined            RecommendationStatus = "DECLINED"
)

// Recommendation is the user-facing bundle derived from the total score.
// AdditionalDocs is populated for the manual-review tier, Reasons and
// Suggestions for the declined tier.
type Recommendation struct {
	Status         RecommendationStatus `json:"status"`
	Limit          string               `json:"limit,omitempty"`
	Rate           string               `json:"rate,omitempty"`
	ProcessingTime string               `json:"processing_time,omitempty"`
	AdditionalDocs []string             `json:"additional_docs,omitempty"`
	Reasons        []string             `json:"reasons,omitempty"`
	Suggestions    []string             `json:"suggestions,omitempty"`
}

// RecommendationFor maps a total score to its bundle. Tier boundaries come
// from the same threshold table as the score category, so the two can
// never drift apart.
func RecommendationFor(totalScore float64) Recommendation {
	switch categoryFor(totalScore) {
	case CategoryExcellent:
		return Recommendation{
			Status:         RecommendationFullApproval,
			Limit:          "Up to 100% of pre-approved limit",
			Rate:           "Best available rates (8.5-10%)",
			ProcessingTime: "Instant approval",
		}
	case CategoryGood:
		return Recommendation{
			Status:         RecommendationConditionalApproval,
			Limit:          "Up to 80% of pre-approved limit",
			Rate:           "Standard rates (10-12%)",
			ProcessingTime: "2-4 hours",
		}
	case CategoryFair:
		return Recommendation{
			Status:         RecommendationManualReview,
			Limit:          "Up to 50% of pre-approved limit",
			Rate:           "Higher rates (12-14%)",
			ProcessingTime: "24-48 hours",
			AdditionalDocs: []string{"Bank statements", "Income proof", "Collateral details"},
		}
	default:
		return Recommendation{
			Status:      RecommendationDeclined,
			Reasons:     []string{"Low credit score", "High DTI", "Poor payment history"},
			Suggestions: []string{
				"Improve credit score (pay bills on time)",
				"Reduce existing debt",
				"Consider smaller loan amount",
				"Reapply after 6 months",
			},
		}
	}
}
