package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingParameter     = errors.New("missing required parameter")
	ErrUnknownParameter     = errors.New("parameter not accepted by operation")
	ErrUnknownOperation     = errors.New("unknown operation")
	ErrUnsupportedOperation = errors.New("operation not supported by api version")
	ErrInvalidPadName       = errors.New("pad name must not contain '$'")
	ErrInvalidGroupID       = errors.New("not a group id")
	ErrInvalidReadOnlyID    = errors.New("not a read only id")
)

// TransportError is a network level failure. The request may or may not have reached the server.
type TransportError struct {
	Operation string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error calling %s: %v", e.Operation, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response that is not a valid envelope: non-JSON bodies,
// missing codes and codes outside 0..4. Body holds the raw response; Error
// only quotes its start.
type ProtocolError struct {
	Operation  string
	StatusCode int
	Code       *Code
	Body       string
	Err        error
}

func (e *ProtocolError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("%s: unknown response code %d (http %d): %s", e.Operation, int(*e.Code), e.StatusCode, e.excerpt())
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response (http %d): %v: %s", e.Operation, e.StatusCode, e.Err, e.excerpt())
	}
	return fmt.Sprintf("%s: malformed response (http %d): %s", e.Operation, e.StatusCode, e.excerpt())
}

const maxBodyInError = 512

func (e *ProtocolError) excerpt() string {
	if len(e.Body) <= maxBodyInError {
		return e.Body
	}
	return e.Body[:maxBodyInError] + "..."
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

type InvalidParametersError struct {
	Message string
}

func (e *InvalidParametersError) Error() string { return e.Message }

type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

type InvalidMethodError struct {
	Message string
}

func (e *InvalidMethodError) Error() string { return e.Message }

type InvalidAPIKeyError struct {
	Message string
}

func (e *InvalidAPIKeyError) Error() string { return e.Message }

// FromEnvelope maps a non-zero envelope code onto its error type. Messages are kept verbatim.
func FromEnvelope(operation string, statusCode int, code Code, message string, raw []byte) error {
	switch code {
	case CodeOK:
		return nil
	case CodeInvalidParameters:
		return &InvalidParametersError{Message: message}
	case CodeInternalError:
		return &ServerError{Message: message}
	case CodeInvalidMethod:
		return &InvalidMethodError{Message: message}
	case CodeInvalidAPIKey:
		return &InvalidAPIKeyError{Message: message}
	}
	return &ProtocolError{
		Operation:  operation,
		StatusCode: statusCode,
		Code:       &code,
		Body:       string(raw),
	}
}

// CodeOf returns the envelope code an error was built from. ok is false for
// transport, protocol and local errors.
func CodeOf(err error) (Code, bool) {
	var invalidParams *InvalidParametersError
	var server *ServerError
	var invalidMethod *InvalidMethodError
	var invalidKey *InvalidAPIKeyError
	switch {
	case errors.As(err, &invalidParams):
		return CodeInvalidParameters, true
	case errors.As(err, &server):
		return CodeInternalError, true
	case errors.As(err, &invalidMethod):
		return CodeInvalidMethod, true
	case errors.As(err, &invalidKey):
		return CodeInvalidAPIKey, true
	}
	return 0, false
}

// IsAlreadyExists matches the server's "padID does already exist" family of messages.
func IsAlreadyExists(err error) bool {
	var invalidParams *InvalidParametersError
	if !errors.As(err, &invalidParams) {
		return false
	}
	return strings.Contains(invalidParams.Message, "already exist")
}

// IsNotFound matches the server's "padID does not exist" family of messages.
func IsNotFound(err error) bool {
	var invalidParams *InvalidParametersError
	if !errors.As(err, &invalidParams) {
		return false
	}
	return strings.Contains(invalidParams.Message, "does not exist")
}
