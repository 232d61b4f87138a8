package workers

import (
	"context"
	"time"

	"rooya_backend/internal/logger"
	"rooya_backend/internal/repositories"

	"gorm.io/gorm"
)

// SubscriptionWorker sweeps overdue subscriptions in the background.
// The effective-subscription query already ignores expired windows, so
// the sweep is bookkeeping: it keeps the is_active flag honest for
// reporting and admin views.
type SubscriptionWorker struct {
	db               *gorm.DB
	subscriptionRepo repositories.SubscriptionRepository
	interval         time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, subscriptionRepo repositories.SubscriptionRepository) *SubscriptionWorker {
	return &SubscriptionWorker{
		db:               db,
		subscriptionRepo: subscriptionRepo,
		interval:         1 * time.Hour,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.expireOverdue(ctx)
}

func (w *SubscriptionWorker) expireOverdue(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			n, err := w.subscriptionRepo.ExpireOverdue(w.db, time.Now())
			if err != nil {
				logger.WithError(err).Error("Failed to expire overdue subscriptions")
			} else if n > 0 {
				logger.Info("Expired overdue subscriptions", "count", n)
			}
		}
	}
}
