package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{"pending", TaskStatusPending, false},
		{"in_progress", TaskStatusInProgress, false},
		{"done", TaskStatusDone, false},
		{"DONE", TaskStatusDone, false},
		{" In_Progress ", TaskStatusInProgress, false},
		{"", "", true},
		{"archived", "", true},
		{"in-progress", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTaskStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTaskStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTaskStatus_Message(t *testing.T) {
	t.Parallel()

	_, err := ParseTaskStatus("x")
	assert.EqualError(t, err, `invalid task status "x": must be one of pending, in_progress, done`)
}

func TestTaskStatus_JSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		Status TaskStatus `json:"status"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"status":"in_progress"}`), &payload))
	assert.Equal(t, TaskStatusInProgress, payload.Status)

	err := json.Unmarshal([]byte(`{"status":"someday"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	out, err := json.Marshal(struct {
		Status TaskStatus `json:"status"`
	}{TaskStatusDone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"done"}`, string(out))

	_, err = json.Marshal(struct {
		Status TaskStatus `json:"status"`
	}{TaskStatus("bogus")})
	assert.Error(t, err)
}

func TestTaskStatuses_ReturnsCopy(t *testing.T) {
	t.Parallel()

	all := TaskStatuses()
	require.Len(t, all, 3)
	all[0] = "mutated"
	assert.Equal(t, TaskStatusPending, TaskStatuses()[0])
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask(1, "Write report", strPtr("quarterly"), "")

	require.NoError(t, err)
	assert.Equal(t, int64(1), task.UserID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "quarterly", *task.Description)
	assert.Equal(t, TaskStatusPending, task.Status, "status defaults to pending")
	assert.False(t, task.CreatedAt.IsZero())
}

func TestNewTask_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  int64
		title   string
		status  TaskStatus
		wantErr error
	}{
		{"missing owner", 0, "title", TaskStatusPending, ErrEmptyTaskUserID},
		{"empty title", 1, "", TaskStatusPending, ErrEmptyTaskTitle},
		{"blank title", 1, "   ", TaskStatusPending, ErrEmptyTaskTitle},
		{"title too long", 1, strings.Repeat("x", MaxTaskTitleLength+1), TaskStatusPending, ErrTaskTitleTooLong},
		{"unknown status", 1, "title", TaskStatus("later"), ErrInvalidTaskStatus},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tt.userID, tt.title, nil, tt.status)

			assert.Nil(t, task)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewTask_TitleLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	// 255 multi-byte characters is still within the limit.
	_, err := NewTask(1, strings.Repeat("é", MaxTaskTitleLength), nil, "")
	assert.NoError(t, err)
}

func TestTaskApplyUpdate(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	base := func() *Task {
		return &Task{
			ID:          9,
			UserID:      3,
			Title:       "Original",
			Description: strPtr("desc"),
			Status:      TaskStatusPending,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	t.Run("status only", func(t *testing.T) {
		t.Parallel()

		task := base()
		done := TaskStatusDone
		require.NoError(t, task.ApplyUpdate(TaskUpdate{Status: &done}))

		assert.Equal(t, TaskStatusDone, task.Status)
		assert.Equal(t, "Original", task.Title)
		assert.Equal(t, "desc", *task.Description)
		assert.Equal(t, int64(3), task.UserID)
		assert.Equal(t, created, task.CreatedAt)
		assert.True(t, task.UpdatedAt.After(created))
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		task := base()
		inProgress := TaskStatusInProgress
		require.NoError(t, task.ApplyUpdate(TaskUpdate{
			Title:       strPtr("Renamed"),
			Description: strPtr(""),
			Status:      &inProgress,
		}))

		assert.Equal(t, "Renamed", task.Title)
		assert.Equal(t, "", *task.Description)
		assert.Equal(t, TaskStatusInProgress, task.Status)
	})

	t.Run("empty title rejected and task unchanged", func(t *testing.T) {
		t.Parallel()

		task := base()
		done := TaskStatusDone
		err := task.ApplyUpdate(TaskUpdate{Title: strPtr(""), Status: &done})

		assert.ErrorIs(t, err, ErrEmptyTaskTitle)
		assert.Equal(t, *base(), *task)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()

		task := base()
		bogus := TaskStatus("bogus")
		err := task.ApplyUpdate(TaskUpdate{Status: &bogus})

		assert.ErrorIs(t, err, ErrInvalidTaskStatus)
		assert.Equal(t, TaskStatusPending, task.Status)
	})
}
