package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so the delivery layer can map them to
// transport codes without inspecting message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindAuthorization
	KindState
	KindNotFound
)

// Error is the kinded error used across use cases. It wraps an optional cause.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets sentinel comparisons match on kind, so
// errors.Is(err, domain.ErrValidation) works for any validation error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrState         = &Error{Kind: KindState}
	ErrNotFound      = &Error{Kind: KindNotFound}
)

func ValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func AuthorizationError(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func StateError(format string, args ...any) error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindUnknown for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Common sentinels shared by repositories and use cases.
var (
	ErrProfileNotFound      = &Error{Kind: KindNotFound, Message: "profile not found"}
	ErrMatchmakerNotFound   = &Error{Kind: KindNotFound, Message: "matchmaker not found"}
	ErrPropositionNotFound  = &Error{Kind: KindNotFound, Message: "proposition not found"}
	ErrIntroRequestNotFound = &Error{Kind: KindNotFound, Message: "proposition request not found"}
	ErrTransferNotFound     = &Error{Kind: KindNotFound, Message: "transfer request not found"}
	ErrInvalidCredentials   = &Error{Kind: KindAuthorization, Message: "invalid credentials"}
	ErrNotPermitted         = &Error{Kind: KindAuthorization, Message: "not permitted"}
	ErrAlreadyResponded     = &Error{Kind: KindState, Message: "already responded"}
	ErrPropositionExpired   = &Error{Kind: KindState, Message: "proposition expired"}
)
