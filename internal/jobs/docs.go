// Package jobs provides scheduled background tasks for the repair shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// for periodic housekeeping around the repair-order lifecycle.
//
// # Available Jobs
//
// 1. ApprovalReminderJob - Runs every minute to report orders stuck in
// WAITING_FOR_APPROVAL so the front desk can chase the customer.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(repository, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Repository scan failures are logged and retried on the next tick; a
// reminder job never mutates order state.
package jobs
