package rooms

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindQuotaExceeded
	KindAgeRestricted
	KindInvalidCredential
	KindInvalidRole
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindAgeRestricted:
		return "age_restricted"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindInvalidRole:
		return "invalid_role"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is the coordinator's typed failure. Callers match on Kind so
// "not owner" is always distinguishable from "not found".
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapUnavailable(op string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: op, Err: err}
}

// KindOf extracts the failure kind from err, or zero if err is not a
// coordinator error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
