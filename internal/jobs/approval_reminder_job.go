package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/core/ports"
)

// ApprovalReminderJob periodically reports orders stuck waiting for the
// customer to approve a cost overrun, so the front desk can chase them.
type ApprovalReminderJob struct {
	repository ports.OrderRepository
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewApprovalReminderJob creates the reminder job. It scans the repository
// once a minute.
func NewApprovalReminderJob(repository ports.OrderRepository, logger *slog.Logger) *ApprovalReminderJob {
	return &ApprovalReminderJob{
		repository: repository,
		cron:       cron.New(),
		logger:     logger.With("component", "approval_reminder_job"),
	}
}

// Start begins the reminder job to run every minute.
func (j *ApprovalReminderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		orders, findErr := j.repository.FindAll(ctx)
		if findErr != nil {
			j.logger.ErrorContext(ctx, "Approval reminder scan failed", "error", findErr)
			return
		}

		for _, aggregate := range orders {
			if aggregate.Status() != order.WaitingForApproval {
				continue
			}

			attrs := []any{
				"order_id", aggregate.ID(),
				"customer", aggregate.Customer(),
				"real_total", aggregate.RealTotal().String(),
			}
			if amount, ok := aggregate.AuthorizedAmount(); ok {
				attrs = append(attrs, "authorized_amount", amount.String())
			}
			j.logger.InfoContext(ctx, "Order waiting for customer approval", attrs...)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Approval reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *ApprovalReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Approval reminder job stopped")
}
