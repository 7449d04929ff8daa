package booking

import "fmt"

// BookingError is a conflict raised while turning a request into an
// appointment. Compare with errors.Is against the Err* values; only the
// Code is compared.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Is(target error) bool {
	t, ok := target.(*BookingError)
	return ok && t.Code == e.Code
}

var (
	ErrSlotUnavailable  = &BookingError{Code: "slotUnavailable"}
	ErrPackageNotUsable = &BookingError{Code: "packageNotUsable"}
)

func newSlotUnavailable(format string, args ...any) error {
	return &BookingError{Code: ErrSlotUnavailable.Code, Message: fmt.Sprintf(format, args...)}
}

func newPackageNotUsable(format string, args ...any) error {
	return &BookingError{Code: ErrPackageNotUsable.Code, Message: fmt.Sprintf(format, args...)}
}
