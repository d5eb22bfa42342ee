// Package task defines the canonical task types shared by the client,
// the store and the CLI.
package task

// Priority levels accepted by the service.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is the canonical task value: camel-cased field names, unwrapped of
// any response envelope. The service owns ID, CreatedAt, UpdatedAt and
// UserID; clients never assign them.
//
// Timestamps and DueDate are kept as the service's wire strings. The
// service emits them with and without zone suffixes depending on the
// endpoint, so they are parsed on demand (see the dates package) instead
// of eagerly into time.Time.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// Draft is the payload for creating a task.
type Draft struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"dueDate,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched by the service.
// Completion is deliberately absent: it can only change through the toggle
// operation.
type Patch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate,omitempty"`
}
