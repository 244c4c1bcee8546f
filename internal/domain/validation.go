package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports every problem with a request at once, so the
// caller can fix a form in a single round trip.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.MissingFields, ", "))
}
