package memory

import (
	"time"

	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
	"origination-engine/internal/domain/kyc"
	"origination-engine/internal/domain/offer"
)

func repeat(token string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = token
	}
	return out
}

// SeedCustomers returns the fixture customer directory.
func SeedCustomers() []*customer.Profile {
	created := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)
	return []*customer.Profile{
		{
			CustomerID:        "C001",
			Name:              "Rajesh Kumar",
			Phone:             "+919876543210",
			Email:             "rajesh.kumar@example.com",
			MonthlyIncome:     100000,
			CurrentMonthlyEMI: 10000,
			PreApprovedLimit:  500000,
			CreditScore:       780,
			Status:            customer.StatusExisting,
			CreatedAt:         created,
		},
		{
			CustomerID:        "C002",
			Name:              "Priya Sharma",
			Phone:             "+919812345678",
			Email:             "priya.sharma@example.com",
			MonthlyIncome:     65000,
			CurrentMonthlyEMI: 22000,
			PreApprovedLimit:  300000,
			CreditScore:       720,
			Status:            customer.StatusExisting,
			CreatedAt:         created.AddDate(0, 1, 3),
		},
		{
			CustomerID:        "C003",
			Name:              "Amit Patel",
			Phone:             "+919900112233",
			Email:             "amit.patel@example.com",
			MonthlyIncome:     40000,
			CurrentMonthlyEMI: 18000,
			PreApprovedLimit:  150000,
			CreditScore:       610,
			Status:            customer.StatusExisting,
			CreatedAt:         created.AddDate(0, 2, 20),
		},
	}
}

// SeedReports returns the fixture bureau snapshots, keyed to SeedCustomers.
func SeedReports() []*credit.CreditReport {
	return []*credit.CreditReport{
		{
			CustomerID:       "C001",
			CibilScore:       780,
			UtilizationRatio: 20,
			InquiriesLast6M:  1,
			PaymentHistory:   repeat("ontime", 12),
			DefaultsCount:    0,
			ReportDate:       "2024-06-01",
		},
		{
			CustomerID:       "C002",
			CibilScore:       720,
			UtilizationRatio: 45,
			InquiriesLast6M:  3,
			PaymentHistory:   append(repeat("ontime", 10), credit.PaymentDelayed, "ontime"),
			DefaultsCount:    0,
			ReportDate:       "2024-06-01",
		},
		{
			CustomerID:       "C003",
			CibilScore:       610,
			UtilizationRatio: 82,
			InquiriesLast6M:  6,
			PaymentHistory:   append(repeat(credit.PaymentDelayed, 3), repeat("ontime", 9)...),
			DefaultsCount:    1,
			ReportDate:       "2024-06-01",
		},
	}
}

// SeedKYCRecords returns the fixture KYC records: C001 complete, C002
// partially done, C003 barely started.
func SeedKYCRecords() []*kyc.Record {
	verified := time.Date(2024, 5, 18, 14, 0, 0, 0, time.UTC)
	return []*kyc.Record{
		{
			CustomerID:         "C001",
			AadhaarNumber:      "VERIFIED_AADHAAR",
			PANNumber:          "VERIFIED_PAN",
			AddressProof:       "Verified: utility_bill.pdf",
			IncomeProof:        "Verified: salary_slip_apr.pdf",
			BankStatement:      "Verified: statement_q1.pdf",
			KYCScore:           100,
			VerificationStatus: kyc.StatusApproved,
			LastVerified:       &verified,
			Documents:          []kyc.Document{},
		},
		{
			CustomerID:         "C002",
			AadhaarNumber:      "VERIFIED_AADHAAR",
			PANNumber:          "VERIFIED_PAN",
			IncomeProof:        kyc.IncomeProofPending,
			BankStatement:      kyc.BankStatementNotUploaded,
			KYCScore:           50,
			VerificationStatus: kyc.StatusPending,
			Documents:          []kyc.Document{},
		},
		{
			CustomerID:         "C003",
			AadhaarNumber:      "VERIFIED_AADHAAR",
			KYCScore:           25,
			VerificationStatus: kyc.StatusNotStarted,
			Documents:          []kyc.Document{},
		},
	}
}

// SeedOffers returns the fixture offer catalog.
func SeedOffers() []*offer.Offer {
	return []*offer.Offer{
		{
			OfferID:              "OFF001",
			Name:                 "Personal Loan Express",
			Type:                 "PERSONAL",
			MinAmount:            50000,
			MaxAmount:            1000000,
			InterestRateRange:    [2]float64{10.5, 14.0},
			TenureRangeMonths:    [2]int{12, 60},
			ProcessingFeePercent: 1.5,
			EligibilityCriteria: offer.EligibilityCriteria{
				MinCreditScore:   650,
				MinMonthlyIncome: 25000,
			},
			Features: []string{"No collateral", "Instant disbursal", "Flexible tenure"},
		},
		{
			OfferID:              "OFF002",
			Name:                 "Home Improvement Loan",
			Type:                 "HOME_IMPROVEMENT",
			MinAmount:            100000,
			MaxAmount:            2500000,
			InterestRateRange:    [2]float64{9.5, 12.0},
			TenureRangeMonths:    [2]int{24, 120},
			ProcessingFeePercent: 1.0,
			EligibilityCriteria: offer.EligibilityCriteria{
				MinCreditScore:   700,
				MinMonthlyIncome: 50000,
			},
			Features: []string{"Lower rates for existing customers", "Top-up available"},
		},
		{
			OfferID:              "OFF003",
			Name:                 "Premium Credit Line",
			Type:                 "CREDIT_LINE",
			MinAmount:            200000,
			MaxAmount:            5000000,
			InterestRateRange:    [2]float64{8.5, 10.5},
			TenureRangeMonths:    [2]int{12, 84},
			ProcessingFeePercent: 0.5,
			EligibilityCriteria: offer.EligibilityCriteria{
				MinCreditScore:   750,
				MinMonthlyIncome: 80000,
			},
			Features: []string{"Best-in-class rates", "Dedicated relationship manager"},
		},
	}
}
