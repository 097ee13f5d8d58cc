package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/adapters/outbox"
	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/kvstore"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

func newTaskService(t *testing.T) (*TaskService, *outbox.MemoryOutbox, ports.SessionRepository) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	box := outbox.NewMemoryOutbox(8)
	sessionRepo := repository.NewSessionRepository(kv)
	svc := NewTaskService(repository.NewTaskRepository(kv), sessionRepo, box, logger.NewNop())
	return svc, box, sessionRepo
}

func strPtr(s string) *string { return &s }

func TestLoadSeedsOnce(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	tasks, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Complete Project Proposal", tasks[0].Title)
	assert.True(t, tasks[1].Completed)

	_, err = svc.DeleteTask(ctx, 1)
	require.NoError(t, err)

	// A second load must not restore the seed.
	tasks, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestAddTaskAssignsMonotonicIDs(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	// Empty collection starts at 1.
	first, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "First", DueDate: "2025-05-01", Priority: entities.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Second", DueDate: "2025-05-02", Priority: entities.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.False(t, second.Completed)
	assert.False(t, second.CreatedAt.IsZero())

	// Deleting below the max does not free the id.
	removed, err := svc.DeleteTask(ctx, 1)
	require.NoError(t, err)
	require.True(t, removed)

	third, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Third", DueDate: "2025-05-03", Priority: entities.PriorityMedium})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestUpdateTaskPatchesOnlySetFields(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	created, err := svc.AddTask(ctx, ports.CreateTaskRequest{
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     "2025-05-10",
		Priority:    entities.PriorityMedium,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{Title: strPtr("Write annual report")})
	require.NoError(t, err)
	assert.Equal(t, "Write annual report", updated.Title)
	assert.Equal(t, "Quarterly numbers", updated.Description)
	assert.Equal(t, "2025-05-10", updated.DueDate)
	assert.Equal(t, entities.PriorityMedium, updated.Priority)

	_, err = svc.UpdateTask(ctx, 99, ports.UpdateTaskRequest{Title: strPtr("nope")})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestToggleCompleteIsSelfInverse(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	created, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Flip me", DueDate: "2025-05-01", Priority: entities.PriorityLow})
	require.NoError(t, err)

	toggled, err := svc.ToggleComplete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// Persisted, not just returned.
	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	back, err := svc.ToggleComplete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, back.Completed)

	_, err = svc.ToggleComplete(ctx, 99)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestDeleteTaskMissingIsNoOp(t *testing.T) {
	svc, _, _ := newTaskService(t)

	removed, err := svc.DeleteTask(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListTasksFiltersAndSorts(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	all, err := svc.ListTasks(ctx, entities.FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-04-22", all[0].DueDate)
	assert.Equal(t, "2025-04-25", all[1].DueDate)
	assert.Equal(t, "2025-04-30", all[2].DueDate)

	pending, err := svc.ListTasks(ctx, entities.FilterPending)
	require.NoError(t, err)
	completed, err := svc.ListTasks(ctx, entities.FilterCompleted)
	require.NoError(t, err)

	// The two filtered views partition the collection.
	assert.Len(t, pending, 2)
	assert.Len(t, completed, 1)
	for _, task := range pending {
		assert.False(t, task.Completed)
	}
	for _, task := range completed {
		assert.True(t, task.Completed)
	}

	_, err = svc.ListTasks(ctx, entities.FilterMode("urgent"))
	assert.ErrorIs(t, err, entities.ErrInvalidFilterMode)
}

func TestSortByDueDateIsStable(t *testing.T) {
	tasks := []entities.Task{
		{ID: 1, Title: "b", DueDate: "2025-05-02"},
		{ID: 2, Title: "a1", DueDate: "2025-05-01"},
		{ID: 3, Title: "a2", DueDate: "2025-05-01"},
	}

	sorted := SortByDueDate(tasks)
	require.Len(t, sorted, 3)
	assert.Equal(t, 2, sorted[0].ID)
	assert.Equal(t, 3, sorted[1].ID)
	assert.Equal(t, 1, sorted[2].ID)

	// Input order untouched.
	assert.Equal(t, 1, tasks[0].ID)
}

func TestComputeStats(t *testing.T) {
	cases := []struct {
		name  string
		tasks []entities.Task
		want  entities.Stats
	}{
		{
			name: "empty",
			want: entities.Stats{},
		},
		{
			name:  "single pending",
			tasks: []entities.Task{{ID: 1}},
			want:  entities.Stats{Total: 1, Pending: 1},
		},
		{
			name:  "single completed",
			tasks: []entities.Task{{ID: 1, Completed: true}},
			want:  entities.Stats{Total: 1, Completed: 1, CompletionRate: 100},
		},
		{
			name: "two of three rounds to 67",
			tasks: []entities.Task{
				{ID: 1, Completed: true},
				{ID: 2, Completed: true},
				{ID: 3},
			},
			want: entities.Stats{Total: 3, Completed: 2, Pending: 1, CompletionRate: 67},
		},
		{
			name: "one of three rounds to 33",
			tasks: []entities.Task{
				{ID: 1, Completed: true},
				{ID: 2},
				{ID: 3},
			},
			want: entities.Stats{Total: 3, Completed: 1, Pending: 2, CompletionRate: 33},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStats(tc.tasks))
		})
	}
}

func TestGetStatsTracksToggles(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	created, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Only one", DueDate: "2025-05-01", Priority: entities.PriorityLow})
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Stats{Total: 1, Pending: 1}, stats)

	_, err = svc.ToggleComplete(ctx, created.ID)
	require.NoError(t, err)

	stats, err = svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Stats{Total: 1, Completed: 1, CompletionRate: 100}, stats)
}

func TestSyncOnlyEnqueuesWithSession(t *testing.T) {
	svc, box, sessionRepo := newTaskService(t)
	ctx := context.Background()

	// No session user: mutations stay local.
	_, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Quiet", DueDate: "2025-05-01", Priority: entities.PriorityLow})
	require.NoError(t, err)
	assert.Zero(t, box.Len())

	require.NoError(t, sessionRepo.Save(ctx, &entities.User{Name: "ada", Email: "ada@example.com"}))

	created, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Synced", DueDate: "2025-05-02", Priority: entities.PriorityHigh})
	require.NoError(t, err)
	require.Equal(t, 1, box.Len())

	event, ok := box.Dequeue()
	require.True(t, ok)
	assert.Equal(t, entities.SyncActionAdd, event.Action)
	require.NotNil(t, event.Task)
	assert.Equal(t, created.ID, event.Task.ID)
	assert.NotZero(t, event.ID)
	assert.False(t, event.EnqueuedAt.IsZero())

	_, err = svc.ToggleComplete(ctx, created.ID)
	require.NoError(t, err)
	event, ok = box.Dequeue()
	require.True(t, ok)
	assert.Equal(t, entities.SyncActionUpdate, event.Action)

	_, err = svc.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	event, ok = box.Dequeue()
	require.True(t, ok)
	assert.Equal(t, entities.SyncActionDelete, event.Action)
	assert.Equal(t, created.ID, event.Task.ID)
}

func TestNilOutboxDisablesSync(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	sessionRepo := repository.NewSessionRepository(kv)
	svc := NewTaskService(repository.NewTaskRepository(kv), sessionRepo, nil, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, sessionRepo.Save(ctx, &entities.User{Name: "ada", Email: "ada@example.com"}))

	_, err := svc.AddTask(ctx, ports.CreateTaskRequest{Title: "Local only", DueDate: "2025-05-01", Priority: entities.PriorityLow})
	require.NoError(t, err)
}
