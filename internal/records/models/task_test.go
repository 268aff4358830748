package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidTask(t *testing.T) *Task {
	t.Helper()
	task, err := NewTask("T-1", "Write report", "Quarterly numbers for finance")
	require.NoError(t, err)
	return task
}

func TestNewTask(t *testing.T) {
	t.Run("trims all fields", func(t *testing.T) {
		task, err := NewTask(" T-1 ", " Write report ", " Quarterly numbers ")
		require.NoError(t, err)
		assert.Equal(t, "T-1", task.ID())
		assert.Equal(t, "Write report", task.Name())
		assert.Equal(t, "Quarterly numbers", task.Description())
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		cases := []struct {
			name               string
			id, taskName, desc string
			want               string
		}{
			{"blank id", "  ", "Write", "Report", "taskId must not be blank"},
			{"long id", "12345678901", "Write", "Report", "taskId length must be between 1 and 10"},
			{"blank name", "T-1", "   ", "Report", "name must not be blank"},
			{"long name", "T-1", strings.Repeat("N", 21), "Report", "name length must be between 1 and 20"},
			{"long description", "T-1", "Write", strings.Repeat("D", 51), "description length must be between 1 and 50"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				task, err := NewTask(tc.id, tc.taskName, tc.desc)
				require.Nil(t, task)
				require.EqualError(t, err, tc.want)
			})
		}
	})

	t.Run("accepts boundary lengths", func(t *testing.T) {
		task, err := NewTask("1234567890", strings.Repeat("N", 20), strings.Repeat("D", 50))
		require.NoError(t, err)
		assert.Len(t, task.Name(), 20)
		assert.Len(t, task.Description(), 50)
	})
}

func TestTaskUpdate(t *testing.T) {
	t.Run("applies both fields together", func(t *testing.T) {
		task := newValidTask(t)
		require.NoError(t, task.Update("X", "New description"))
		assert.Equal(t, "X", task.Name())
		assert.Equal(t, "New description", task.Description())
		assert.Equal(t, "T-1", task.ID())
	})

	t.Run("invalid description leaves both fields unchanged", func(t *testing.T) {
		task := newValidTask(t)
		err := task.Update("X", strings.Repeat("D", 51))
		require.Error(t, err)
		assert.Equal(t, "Write report", task.Name())
		assert.Equal(t, "Quarterly numbers for finance", task.Description())
	})
}

func TestTaskCopy(t *testing.T) {
	task := newValidTask(t)
	dup, err := task.Copy()
	require.NoError(t, err)
	assert.Equal(t, task, dup)

	require.NoError(t, dup.SetName("Other"))
	assert.Equal(t, "Write report", task.Name())
}
