// Package validate holds the pure input checks shared by the account and
// employee services. Every helper is deterministic, does no I/O, and fails
// with an *Error carrying a user-facing message.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/empgraph/apiserver/types"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error is a validation failure with a user-facing message.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

var emailValidator = validator.New()

// Accepted layouts for date_of_joining. A bare calendar date and the
// common ISO-8601 datetime forms are all valid.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// NonEmpty fails when value is empty or whitespace-only.
func NonEmpty(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return newError("%s is required.", field)
	}
	return nil
}

// Email fails when value is not a well-formed email address.
func Email(value string) error {
	if err := emailValidator.Var(strings.TrimSpace(value), "required,email"); err != nil {
		return newError("Invalid email format.")
	}
	return nil
}

// Date parses an ISO-8601 calendar date or datetime string.
func Date(value, field string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, newError("%s must be a valid date (ISO format).", field)
}

// ObjectID parses a 24-character hexadecimal store identifier. The what
// argument names the entity in the failure message, e.g. "employee id".
func ObjectID(value, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return primitive.NilObjectID, newError("Invalid %s.", what)
	}
	return id, nil
}

// MinSalary is the lowest salary accepted, inclusive.
const MinSalary = 1000

// Salary fails when value is below the accepted minimum.
func Salary(value float64) error {
	if value < MinSalary {
		return newError("Salary must be a number and >= 1000.")
	}
	return nil
}

// Gender fails when value is not one of the accepted gender values.
func Gender(value string) error {
	switch value {
	case types.GenderMale, types.GenderFemale, types.GenderOther:
		return nil
	}
	return newError("Gender must be Male, Female or Other.")
}

// Fields evaluates checks in order and returns the first failure. It is
// the rule-table entry point used by the create and signup paths.
func Fields(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
