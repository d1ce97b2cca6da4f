package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeReconcilePayment = "payment:reconcile"
	reconcileQueue       = "default"
)

func reconcileTaskID(sessionID string) string { return "reconcile:" + sessionID }

// ReconcilePayload names the checkout session to reconcile.
type ReconcilePayload struct {
	SessionID string `json:"sessionId"`
}

// NewReconcileTask builds a deduplicated retry task for one checkout session.
func NewReconcileTask(sessionID string, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ReconcilePayload{SessionID: sessionID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReconcilePayment, b)
	opts := []asynq.Option{
		asynq.TaskID(reconcileTaskID(sessionID)),
		asynq.Queue(reconcileQueue),
		asynq.MaxRetry(maxRetry),
	}
	return task, opts, nil
}

// ParseReconcilePayload decodes a task payload.
func ParseReconcilePayload(task *asynq.Task) (ReconcilePayload, error) {
	var p ReconcilePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reconcile payload: %w", err)
	}
	if p.SessionID == "" {
		return p, fmt.Errorf("reconcile payload has no session id")
	}
	return p, nil
}

// Enqueuer schedules background work.
type Enqueuer interface {
	EnqueueReconcile(ctx context.Context, sessionID string) error
}

// TaskClient is the enqueue side of *asynq.Client.
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskInspector is the part of *asynq.Inspector used to clear a dead retry task.
type TaskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
	DeleteTask(queue, id string) error
}

// AsynqEnqueuer pushes tasks onto the redis-backed asynq queue.
type AsynqEnqueuer struct {
	Client    TaskClient
	Inspector TaskInspector
	MaxRetry  int
}

// EnqueueReconcile queues one retry task per session. A task that is still
// pending or retrying absorbs the request; an archived one is replaced.
func (e *AsynqEnqueuer) EnqueueReconcile(ctx context.Context, sessionID string) error {
	task, opts, err := NewReconcileTask(sessionID, e.MaxRetry)
	if err != nil {
		return err
	}
	_, err = e.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		err = e.replaceArchived(ctx, task, opts, reconcileTaskID(sessionID))
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reconcile task: %w", err)
	}
	return nil
}

func (e *AsynqEnqueuer) replaceArchived(ctx context.Context, task *asynq.Task, opts []asynq.Option, id string) error {
	if e.Inspector == nil {
		return asynq.ErrTaskIDConflict
	}
	info, err := e.Inspector.GetTaskInfo(reconcileQueue, id)
	switch {
	case errors.Is(err, asynq.ErrTaskNotFound):
		// Finished between the two calls.
	case err != nil:
		return err
	case info.State != asynq.TaskStateArchived:
		return nil
	default:
		if err := e.Inspector.DeleteTask(reconcileQueue, id); err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			return err
		}
	}
	_, err = e.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// Another request re-queued it first.
		return nil
	}
	return err
}
