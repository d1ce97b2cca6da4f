package cron

import (
	"context"
	"errors"
	"testing"

	"decorhub/services/payment"
	"decorhub/services/tasks"
	"decorhub/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, sessionID string) (*payment.ReconcileResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ReconcileResult), args.Error(1)
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(utils.Upstream(errors.New("timeout"), "stripe unavailable")))
	assert.True(t, Retryable(utils.PaymentIncomplete("session is unpaid")))
	assert.True(t, Retryable(errors.New("mongo: connection reset")))

	assert.False(t, Retryable(utils.Validation("no booking reference")))
	assert.False(t, Retryable(utils.NotFound("checkout session not found")))
	assert.False(t, Retryable(utils.Conflict("booking paid by another transaction")))
}

func TestHandleReconcileTask(t *testing.T) {
	ctx := context.Background()
	r := &MockReconciler{}
	r.On("Reconcile", mock.Anything, "cs_ok").Return(&payment.ReconcileResult{PaymentID: "p-1"}, nil)
	r.On("Reconcile", mock.Anything, "cs_down").Return(nil, utils.Upstream(errors.New("503"), "stripe unavailable"))
	r.On("Reconcile", mock.Anything, "cs_gone").Return(nil, utils.NotFound("checkout session not found"))
	handler := HandleReconcileTask(r, zap.NewNop())

	task := func(sessionID string) *asynq.Task {
		tk, _, err := tasks.NewReconcileTask(sessionID, 3)
		assert.NoError(t, err)
		return tk
	}

	assert.NoError(t, handler(ctx, task("cs_ok")))

	err := handler(ctx, task("cs_down"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))

	err = handler(ctx, task("cs_gone"))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handler(ctx, asynq.NewTask(tasks.TypeReconcilePayment, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	r.AssertExpectations(t)
}
