package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeMalformedRecord    Code = "MALFORMED_RECORD"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// UserText returns the message shown in chat for an error with this code.
// Codes that expose internals fall back to a generic failure.
func (c Code) UserText() string {
	switch c {
	case CodeOK:
		return ""
	case CodeInvalidArgument:
		return "That doesn't look right. Check the command and try again."
	case CodeNotFound:
		return "No results found."
	case CodeCanceled, CodeDeadlineExceeded:
		return "No selection was made."
	case CodeUnavailable:
		return "The compendium is unavailable right now. Try again later."
	case CodeMalformedRecord:
		return "Something is wrong with that entry. It has been reported."
	default:
		return "Something went wrong while handling that command."
	}
}
