// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskhub/internal/dates"
	"taskhub/internal/store"
	"taskhub/internal/task"
)

// FormatTask formats one task line.
// Format: "{N:>4}  {[ ]|[x]} {TITLE}" plus priority and due-date
// annotations. The due label comes from the calendar-day classification
// against now, in now's location.
func FormatTask(w io.Writer, num int, t task.Task, now time.Time) {
	marker := "[ ]"
	if t.Completed {
		marker = "[x]"
	}
	line := fmt.Sprintf("%4d  %s %s", num, marker, normalizeTitle(t.Title))
	if t.Priority != "" && t.Priority != task.PriorityMedium {
		line += "  !" + t.Priority
	}
	if t.DueDate != "" {
		if day, ok := dates.ToCalendarDate(t.DueDate, now.Location()); ok {
			c := dates.Classify(day, now)
			line += "  due:" + c.Label
			if c.Urgency == dates.UrgencyOverdue {
				line += " (overdue)"
			}
		}
	}
	fmt.Fprintln(w, line)
}

// FormatStats formats the collection counts.
func FormatStats(w io.Writer, st store.Stats) {
	percent := 0
	if st.Total > 0 {
		percent = st.Completed * 100 / st.Total
	}
	fmt.Fprintf(w, "Total:     %d\n", st.Total)
	fmt.Fprintf(w, "Active:    %d\n", st.Active)
	fmt.Fprintf(w, "Completed: %d (%d%%)\n", st.Completed, percent)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
