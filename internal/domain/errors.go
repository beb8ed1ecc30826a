package domain

import "errors"

// ErrorCode enumerates the closed set of business-rule violations raised
// by command functions. They are never retried inside the domain layer;
// callers surface them as client errors.
type ErrorCode string

const (
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeColumnNotFound      ErrorCode = "COLUMN_NOT_FOUND"
	CodeTicketAlreadyClosed ErrorCode = "TICKET_ALREADY_CLOSED"
	CodeTicketNotClosed     ErrorCode = "TICKET_NOT_CLOSED"
	CodeTagAlreadyExists    ErrorCode = "TAG_ALREADY_EXISTS"
	CodeTagNotFound         ErrorCode = "TAG_NOT_FOUND"
	CodeSameColumn          ErrorCode = "SAME_COLUMN"
	CodeSameAssignee        ErrorCode = "SAME_ASSIGNEE"
)

// Error is a business-rule violation carrying a machine-readable code and
// a human-readable message.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError constructs a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the domain error code from err, unwrapping as needed.
func CodeOf(err error) (ErrorCode, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code, true
	}
	return "", false
}
