package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/cristianoliveira/listkit/internal/listview"
)

// UserError carries a message that is safe to show as-is. The wrapped error
// keeps the internal detail for logs and errors.Is checks.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// User wraps err with a user-facing message.
func User(msg string, err error) error {
	return &UserError{Msg: msg, Err: err}
}

// Userf builds a UserError without an underlying cause.
func Userf(format string, args ...any) error {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// UserMessage returns the user-facing text of err. Errors without a
// UserError in their chain yield fallback so internals never leak to users.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if stderrors.As(err, &ue) {
		return ue.Msg
	}
	return fallback
}

// IsUser reports whether err carries a user-facing message.
func IsUser(err error) bool {
	var ue *UserError
	return stderrors.As(err, &ue)
}

// ReportBulk summarizes a bulk run through h. Success goes to Success, a
// partial run to Warning, a fully failed run to Error. The first failure
// reason is appended when it is user-facing.
func ReportBulk[ID comparable](h ErrorHandler, res listview.Result[ID], action, noun string) {
	msg := res.Message(action, noun)
	if first := res.FirstError(); first != nil {
		if reason := UserMessage(first, ""); reason != "" {
			msg = fmt.Sprintf("%s (%s)", msg, reason)
		}
	}
	switch res.Status {
	case listview.Completed:
		h.Success(msg)
	case listview.CompletedPartial:
		h.Warning(msg)
	default:
		h.Error(msg)
	}
}
