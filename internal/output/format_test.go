package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskhub/internal/store"
	"taskhub/internal/task"
)

func TestFormatTask(t *testing.T) {
	now := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		num  int
		task task.Task
		want string
	}{
		{
			"active task",
			1,
			task.Task{Title: "Buy milk"},
			"   1  [ ] Buy milk\n",
		},
		{
			"completed task",
			12,
			task.Task{Title: "Ship release", Completed: true},
			"  12  [x] Ship release\n",
		},
		{
			"high priority",
			2,
			task.Task{Title: "Fix outage", Priority: task.PriorityHigh},
			"   2  [ ] Fix outage  !high\n",
		},
		{
			"medium priority is unmarked",
			3,
			task.Task{Title: "Routine", Priority: task.PriorityMedium},
			"   3  [ ] Routine\n",
		},
		{
			"due today",
			4,
			task.Task{Title: "File taxes", DueDate: "2024-02-20"},
			"   4  [ ] File taxes  due:Today\n",
		},
		{
			"due tomorrow with time suffix",
			5,
			task.Task{Title: "Call back", DueDate: "2024-02-21T12:00:00Z"},
			"   5  [ ] Call back  due:Tomorrow\n",
		},
		{
			"overdue",
			6,
			task.Task{Title: "Return book", DueDate: "2024-02-01"},
			"   6  [ ] Return book  due:Feb 1 (overdue)\n",
		},
		{
			"unparseable due date dropped",
			7,
			task.Task{Title: "Someday", DueDate: "whenever"},
			"   7  [ ] Someday\n",
		},
		{
			"empty title",
			8,
			task.Task{Title: "   "},
			"   8  [ ] (untitled)\n",
		},
		{
			"newlines flattened",
			9,
			task.Task{Title: "line one\nline two"},
			"   9  [ ] line one line two\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			FormatTask(&b, tt.num, tt.task, now)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestFormatStats(t *testing.T) {
	var b strings.Builder
	FormatStats(&b, store.Stats{Total: 4, Active: 1, Completed: 3})
	assert.Equal(t, "Total:     4\nActive:    1\nCompleted: 3 (75%)\n", b.String())
}

func TestFormatStatsEmpty(t *testing.T) {
	var b strings.Builder
	FormatStats(&b, store.Stats{})
	assert.Equal(t, "Total:     0\nActive:    0\nCompleted: 0 (0%)\n", b.String())
}
