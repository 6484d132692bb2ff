package labelgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/label-designer/backend/internal/binding"
)

// ErrMissingFields is matched by every *MissingFieldsError.
var ErrMissingFields = errors.New("missing required fields")

// errRecovered wraps panics caught inside a pipeline stage.
var errRecovered = errors.New("recovered panic")

// MissingFieldsError lists required fields absent from a label request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// CheckRequired returns a *MissingFieldsError when data lacks any of the
// required field names. It must run before Generate.
func CheckRequired(required []string, data map[string]string) error {
	missing := binding.MissingFields(required, data)
	if len(missing) == 0 {
		return nil
	}
	return &MissingFieldsError{Fields: missing}
}

// guard runs fn, converting a panic into an error.
func guard[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", errRecovered, p)
		}
	}()
	return fn()
}
