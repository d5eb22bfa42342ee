package task

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a client-side precondition failure. Values that
// fail validation are rejected before any network call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a draft against the service's field constraints.
func (d Draft) Validate() error {
	return translate(validate.Struct(d))
}

// Validate checks a patch against the service's field constraints. An
// explicitly empty title is rejected here: omitempty would otherwise
// skip the min check for a pointer to "".
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return &ValidationError{Field: "Title", Message: "title is required"}
	}
	return translate(validate.Struct(p))
}

// translate converts validator output into a single ValidationError with a
// user-facing message for the first failing field.
func translate(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	var msg string
	switch fe.Field() {
	case "Title":
		switch fe.Tag() {
		case "required", "min":
			msg = "title is required"
		default:
			msg = "title must be at most 200 characters"
		}
	case "Description":
		msg = "description must be at most 1000 characters"
	case "Priority":
		msg = "priority must be low, medium, or high"
	default:
		msg = fmt.Sprintf("invalid value for %s", fe.Field())
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
