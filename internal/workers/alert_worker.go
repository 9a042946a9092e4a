package workers

import (
	"context"
	"time"

	"farmwork_backend/internal/logger"
	"farmwork_backend/internal/services"

	"gorm.io/gorm"
)

// AlertWorker periodically sends digest emails to subscribers whose
// alerts are due.
type AlertWorker struct {
	db           *gorm.DB
	alertService services.AlertService
	interval     time.Duration
}

func NewAlertWorker(db *gorm.DB, alertService services.AlertService, interval time.Duration) *AlertWorker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &AlertWorker{db: db, alertService: alertService, interval: interval}
}

func (w *AlertWorker) Start(ctx context.Context) {
	go w.runDigests(ctx)
}

func (w *AlertWorker) runDigests(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Alert worker stopped")
			return
		case <-ticker.C:
			err := w.alertService.RunDigest(w.db)
			logger.WorkerLog("alert_worker", "digest_sweep", err)
		}
	}
}
