// Package errs provides the error vocabulary shared by every layer of the marketplace.
//
// Two families live here:
//   - value and lookup errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError), each with a
//     sentinel that errors.Is can match after wrapping;
//   - RuleViolationError, a business-rule failure tagged with a Kind.
//
// KindOf folds both families into one Kind so transports can map any error returned
// by a use case to a stable machine-readable category without inspecting store errors.
package errs
