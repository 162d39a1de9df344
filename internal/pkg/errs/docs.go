// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers both generic validation failures and the business-rule
// failures of the fulfillment domain:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced object does not exist
//   - ForbiddenError: an identified actor lacks role or ownership
//   - ConflictError: a concurrent mutation invalidated an assumption
//   - ExpiredError: a session or cart passed its TTL
//   - InvalidTransitionError: the fulfillment state machine rejected a move
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Business-rule failures are always returned as one of these typed results,
// never as opaque server errors; callers classify them with errors.Is against
// the sentinels.
package errs
