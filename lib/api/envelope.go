package api

import (
	"encoding/json"
	"strings"

	apiErrors "github.com/ether/etherpad-go-client/lib/api/errors"
)

// parseEnvelope turns a raw response body into its data payload or a typed
// error. The HTTP status is only carried along for diagnostics: Etherpad
// answers application errors with 4xx/5xx statuses and a valid envelope.
func parseEnvelope(operation string, statusCode int, body []byte) (json.RawMessage, error) {
	var envelope apiErrors.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &apiErrors.ProtocolError{
			Operation:  operation,
			StatusCode: statusCode,
			Body:       string(body),
			Err:        err,
		}
	}
	if envelope.Code == nil {
		return nil, &apiErrors.ProtocolError{
			Operation:  operation,
			StatusCode: statusCode,
			Body:       string(body),
		}
	}

	message := ""
	if envelope.Message != nil {
		message = *envelope.Message
	}
	if err := apiErrors.FromEnvelope(operation, statusCode, *envelope.Code, message, body); err != nil {
		return nil, err
	}
	if isNullData(envelope.Data) {
		return nil, nil
	}
	return envelope.Data, nil
}

func isNullData(data json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(data))
	return trimmed == "" || trimmed == "null"
}

// decodeData unmarshals a successful payload into out. Absent data leaves out untouched.
func decodeData(operation string, statusCode int, data json.RawMessage, out any) error {
	if out == nil || data == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &apiErrors.ProtocolError{
			Operation:  operation,
			StatusCode: statusCode,
			Body:       string(data),
			Err:        err,
		}
	}
	return nil
}
