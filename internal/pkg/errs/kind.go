package errs

import "errors"

// Kind is the stable, transport-independent category of a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindExpired
	KindAlreadyDone
	KindNotReady
	KindUnavailable
	KindInvalidCode
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindInternal:     "internal",
		KindNotFound:     "not_found",
		KindConflict:     "conflict",
		KindInvalid:      "invalid",
		KindUnauthorized: "unauthorized",
		KindForbidden:    "forbidden",
		KindExpired:      "expired",
		KindAlreadyDone:  "already_done",
		KindNotReady:     "not_ready",
		KindUnavailable:  "unavailable",
		KindInvalidCode:  "invalid_code",
	}
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "internal"
}

// Retryable reports whether a caller may repeat the same request and expect a different outcome.
func (k Kind) Retryable() bool {
	return k == KindConflict || k == KindExpired
}

// RuleViolationError is a business-rule failure. Package-level sentinels of this
// type are compared by identity with errors.Is.
type RuleViolationError struct {
	Kind    Kind
	Message string
}

func NewRuleViolationError(kind Kind, message string) *RuleViolationError {
	return &RuleViolationError{Kind: kind, Message: message}
}

func (e *RuleViolationError) Error() string {
	return e.Message
}

// KindOf classifies err. Unknown errors, store failures included, are KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var rule *RuleViolationError
	if errors.As(err, &rule) {
		return rule.Kind
	}

	switch {
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrVersionIsInvalid):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindInvalid
	default:
		return KindInternal
	}
}

// IsRetryable is shorthand for KindOf(err).Retryable().
func IsRetryable(err error) bool {
	return KindOf(err).Retryable()
}
