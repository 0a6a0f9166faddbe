package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"credit-system/internal/domain/credit"
	"credit-system/internal/infrastructure/monitoring"
)

// OverdueReviewJob reports credits still IN_PROGRESS past their first
// installment day. It only observes; status transitions are out of scope.
type OverdueReviewJob struct {
	creditRepo credit.CreditRepository
	logger     *slog.Logger
}

func NewOverdueReviewJob(creditRepo credit.CreditRepository, logger *slog.Logger) *OverdueReviewJob {
	if creditRepo == nil || logger == nil {
		panic("OverdueReviewJob dependencies cannot be nil")
	}
	return &OverdueReviewJob{
		creditRepo: creditRepo,
		logger:     logger.With("job", "OverdueReview"),
	}
}

func (j *OverdueReviewJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting overdue credit review job.")

	count, err := j.creditRepo.CountOverdueInProgress(ctx, startTime)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count overdue credits, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to count overdue credits: %w", err)
	}

	monitoring.SetOverdueInProgressCredits(count)

	if count > 0 {
		j.logger.WarnContext(ctx, "Found in-progress credits past their first installment day.", slog.Int("count", count))
	}

	j.logger.InfoContext(ctx, "Overdue credit review job finished.",
		slog.Int("count", count),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}
