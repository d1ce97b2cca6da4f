package tasks

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileTaskRoundTrip(t *testing.T) {
	task, opts, err := NewReconcileTask("cs_test_1", 5)
	require.NoError(t, err)
	assert.Equal(t, TypeReconcilePayment, task.Type())
	assert.Len(t, opts, 3)

	p, err := ParseReconcilePayload(task)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", p.SessionID)
}

func TestParseReconcilePayload_RejectsEmptySession(t *testing.T) {
	_, err := ParseReconcilePayload(asynq.NewTask(TypeReconcilePayment, []byte(`{"sessionId":""}`)))
	assert.Error(t, err)
}

type MockTaskClient struct {
	mock.Mock
}

func (m *MockTaskClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task.Type())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

type MockTaskInspector struct {
	mock.Mock
}

func (m *MockTaskInspector) GetTaskInfo(queue, id string) (*asynq.TaskInfo, error) {
	args := m.Called(queue, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

func (m *MockTaskInspector) DeleteTask(queue, id string) error {
	return m.Called(queue, id).Error(0)
}

func TestEnqueueReconcile_ReplacesArchivedTask(t *testing.T) {
	client := &MockTaskClient{}
	inspector := &MockTaskInspector{}
	client.On("EnqueueContext", mock.Anything, TypeReconcilePayment).Return(nil, asynq.ErrTaskIDConflict).Once()
	client.On("EnqueueContext", mock.Anything, TypeReconcilePayment).Return(&asynq.TaskInfo{ID: "reconcile:cs_1"}, nil).Once()
	inspector.On("GetTaskInfo", "default", "reconcile:cs_1").Return(&asynq.TaskInfo{State: asynq.TaskStateArchived}, nil)
	inspector.On("DeleteTask", "default", "reconcile:cs_1").Return(nil)

	e := &AsynqEnqueuer{Client: client, Inspector: inspector, MaxRetry: 3}
	require.NoError(t, e.EnqueueReconcile(context.Background(), "cs_1"))

	client.AssertNumberOfCalls(t, "EnqueueContext", 2)
	inspector.AssertExpectations(t)
}

func TestEnqueueReconcile_LiveTaskAbsorbsRequest(t *testing.T) {
	client := &MockTaskClient{}
	inspector := &MockTaskInspector{}
	client.On("EnqueueContext", mock.Anything, TypeReconcilePayment).Return(nil, asynq.ErrTaskIDConflict)
	inspector.On("GetTaskInfo", "default", "reconcile:cs_1").Return(&asynq.TaskInfo{State: asynq.TaskStateRetry}, nil)

	e := &AsynqEnqueuer{Client: client, Inspector: inspector, MaxRetry: 3}
	require.NoError(t, e.EnqueueReconcile(context.Background(), "cs_1"))

	client.AssertNumberOfCalls(t, "EnqueueContext", 1)
	inspector.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
}

func TestEnqueueReconcile_ConflictWithoutInspectorFails(t *testing.T) {
	client := &MockTaskClient{}
	client.On("EnqueueContext", mock.Anything, TypeReconcilePayment).Return(nil, asynq.ErrTaskIDConflict)

	e := &AsynqEnqueuer{Client: client, MaxRetry: 3}
	err := e.EnqueueReconcile(context.Background(), "cs_1")
	assert.ErrorIs(t, err, asynq.ErrTaskIDConflict)
}
