package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decorhub/config"
	"decorhub/services/payment"
	"decorhub/services/tasks"
	"decorhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Reconciler settles a checkout session.
type Reconciler interface {
	Reconcile(ctx context.Context, sessionID string) (*payment.ReconcileResult, error)
}

// RedisOpt is the asynq connection shared by the worker and the enqueuer.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartReconcileWorker runs the payment retry worker in the background.
func StartReconcileWorker(r Reconciler, logger *zap.Logger) (*asynq.Server, error) {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			RetryDelayFunc: func(n int, _ error, _ *asynq.Task) time.Duration {
				// 10s, 20s, 40s ... capped at 10m.
				d := 10 * time.Second << uint(n)
				if d <= 0 || d > 10*time.Minute {
					d = 10 * time.Minute
				}
				return d
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcilePayment, HandleReconcileTask(r, logger))

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start reconcile worker: %w", err)
	}
	logger.Info("reconcile worker started")
	return srv, nil
}

// HandleReconcileTask retries transient failures and drops permanent ones.
func HandleReconcileTask(r Reconciler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReconcilePayload(task)
		if err != nil {
			logger.Error("dropping reconcile task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		res, err := r.Reconcile(ctx, p.SessionID)
		if err != nil {
			if !Retryable(err) {
				logger.Warn("reconcile task failed permanently", zap.String("sessionId", p.SessionID), zap.Error(err))
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Info("reconcile task will retry", zap.String("sessionId", p.SessionID), zap.Error(err))
			return err
		}

		logger.Info("reconcile task done",
			zap.String("sessionId", p.SessionID),
			zap.String("paymentId", res.PaymentID),
			zap.Bool("duplicate", res.Duplicate))
		return nil
	}
}

// Retryable reports whether a reconcile error may clear up on its own.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, utils.ErrValidation),
		errors.Is(err, utils.ErrNotFound),
		errors.Is(err, utils.ErrConflict),
		errors.Is(err, utils.ErrForbidden):
		return false
	}
	return true
}
