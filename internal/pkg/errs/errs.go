package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the application error taxonomy. Concrete error types
// unwrap to one of these, so callers classify failures with errors.Is.
var (
	ErrValueIsRequired    = errors.New("value is required")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrObjectNotFound     = errors.New("object not found")
	ErrForbidden          = errors.New("operation is forbidden")
	ErrConflict           = errors.New("concurrent modification conflict")
	ErrExpired            = errors.New("object is expired")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrServiceUnavailable = errors.New("service is unavailable")
)

// sanitize flattens multi-line values so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required
// parameter with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed or otherwise unacceptable value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid parameter
// with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for a value outside [min, max].
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for a value outside
// [min, max] with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, sanitize(e.Value), sanitize(e.ParamName), sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object
// with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ForbiddenError reports that an identified actor lacks the role or ownership
// required by the operation.
type ForbiddenError struct {
	ActorID   string
	Operation string
	Cause     error
}

// NewForbiddenError creates an error for an actor attempting an operation
// it is not entitled to perform.
func NewForbiddenError(actorID, operation string) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Operation: operation}
}

// NewForbiddenErrorWithCause creates a ForbiddenError with an underlying cause.
func NewForbiddenErrorWithCause(actorID, operation string, cause error) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Operation: operation, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: actor %s may not %s (cause: %s)",
			ErrForbidden, sanitize(e.ActorID), sanitize(e.Operation), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: actor %s may not %s", ErrForbidden, sanitize(e.ActorID), sanitize(e.Operation))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError reports that a concurrent mutation invalidated an assumption,
// such as a stock race or an already-claimed order.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates an error for a lost concurrent-update race.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError with an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ExpiredError reports that a time-limited object passed its expiry.
type ExpiredError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewExpiredError creates an error for an expired object.
func NewExpiredError(paramName string, id any) *ExpiredError {
	return &ExpiredError{ParamName: paramName, ID: id}
}

// NewExpiredErrorWithCause creates an ExpiredError with an underlying cause.
func NewExpiredErrorWithCause(paramName string, id any, cause error) *ExpiredError {
	return &ExpiredError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ExpiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrExpired, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrExpired, sanitize(e.ID))
}

func (e *ExpiredError) Unwrap() error {
	return ErrExpired
}

// InvalidTransitionError reports a fulfillment move the state machine does not
// license for the given status, role, and target.
type InvalidTransitionError struct {
	From  string
	To    string
	Role  string
	Cause error
}

// NewInvalidTransitionError creates an error for an illegal status transition.
func NewInvalidTransitionError(from, to, role string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError with
// an underlying cause.
func NewInvalidTransitionErrorWithCause(from, to, role string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s is not allowed for role %s",
		ErrInvalidTransition, sanitize(e.From), sanitize(e.To), sanitize(e.Role))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause))
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ServiceUnavailableError reports an infrastructure failure (persistence or
// broker unreachable) as distinct from a business-rule rejection.
type ServiceUnavailableError struct {
	ServiceName string
	Cause       error
}

// NewServiceUnavailableError creates an error for an unreachable dependency.
func NewServiceUnavailableError(serviceName string) *ServiceUnavailableError {
	return &ServiceUnavailableError{ServiceName: serviceName}
}

// NewServiceUnavailableErrorWithCause creates a ServiceUnavailableError with
// an underlying cause.
func NewServiceUnavailableErrorWithCause(serviceName string, cause error) *ServiceUnavailableError {
	return &ServiceUnavailableError{ServiceName: serviceName, Cause: cause}
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)",
			ErrServiceUnavailable, sanitize(e.ServiceName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrServiceUnavailable, sanitize(e.ServiceName))
}

func (e *ServiceUnavailableError) Unwrap() error {
	return ErrServiceUnavailable
}
