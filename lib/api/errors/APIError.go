package errors

import "encoding/json"

// Code is the numeric status carried in every API response envelope.
type Code int

const (
	CodeOK                Code = 0
	CodeInvalidParameters Code = 1
	CodeInternalError     Code = 2
	CodeInvalidMethod     Code = 3
	CodeInvalidAPIKey     Code = 4
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeInvalidParameters:
		return "invalid parameters"
	case CodeInternalError:
		return "internal error"
	case CodeInvalidMethod:
		return "invalid method"
	case CodeInvalidAPIKey:
		return "invalid api key"
	}
	return "unknown"
}

// Envelope represents the JSON wrapper returned by every API call
// @Description {code, message, data} response wrapper
type Envelope struct {
	Code    *Code           `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}
