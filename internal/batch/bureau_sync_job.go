package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
)

// BureauSyncJob reconciles the convenience credit_score mirror on each
// customer profile with the bureau report's cibil_score.
type BureauSyncJob struct {
	customerRepo customer.Repository
	reportRepo   credit.ReportRepository
	logger       *slog.Logger
}

func NewBureauSyncJob(customerRepo customer.Repository, reportRepo credit.ReportRepository, logger *slog.Logger) *BureauSyncJob {
	if customerRepo == nil || reportRepo == nil || logger == nil {
		panic("BureauSyncJob dependencies cannot be nil")
	}
	return &BureauSyncJob{
		customerRepo: customerRepo,
		reportRepo:   reportRepo,
		logger:       logger.With("job", "BureauSync"),
	}
}

func (j *BureauSyncJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting bureau score sync job.")

	profiles, err := j.customerRepo.FindAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched customer profiles.", slog.Int("count", len(profiles)))

	var synced, skipped, errorCount int

	for _, profile := range profiles {
		if ctx.Err() != nil {
			j.logger.WarnContext(ctx, "Job context cancelled, stopping early.", slog.Any("error", ctx.Err()))
			return ctx.Err()
		}

		logCtx := j.logger.With(slog.String("customerID", profile.CustomerID))

		report, err := j.reportRepo.FindByCustomerID(ctx, profile.CustomerID)
		if err != nil {
			if errors.Is(err, credit.ErrReportNotFound) {
				logCtx.DebugContext(ctx, "No bureau report for customer, skipping.")
				skipped++
				continue
			}
			logCtx.ErrorContext(ctx, "Failed to fetch bureau report", slog.Any("error", err))
			errorCount++
			continue
		}

		if profile.CreditScore == report.CibilScore {
			skipped++
			continue
		}

		logCtx.InfoContext(ctx, "Syncing credit score mirror.",
			slog.Int("old", profile.CreditScore),
			slog.Int("new", report.CibilScore))
		profile.CreditScore = report.CibilScore
		if err := j.customerRepo.Upsert(ctx, profile); err != nil {
			logCtx.ErrorContext(ctx, "Failed to update customer profile", slog.Any("error", err))
			errorCount++
			continue
		}
		synced++
	}

	j.logger.InfoContext(ctx, "Bureau score sync job finished.",
		slog.Int("synced", synced),
		slog.Int("skipped", skipped),
		slog.Int("errors", errorCount),
		slog.Duration("duration", time.Since(startTime)))

	if errorCount > 0 {
		return fmt.Errorf("bureau sync finished with %d errors", errorCount)
	}
	return nil
}
