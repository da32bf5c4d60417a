package models

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the generic error response structure returned by every API
// handler. Message is always present; Details carries extended diagnostic
// context and its key is omitted from the JSON body when absent. An absent
// Details is not the same value as an empty-string Details.
type ErrorResponse struct {
	Message string  `json:"message" example:"Error message describing the issue"`
	Details *string `json:"details,omitempty" example:"field 'email' is required"`
}

// NewErrorResponse builds an ErrorResponse with no details.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// WithDetails returns a copy of the response with details attached.
func (e ErrorResponse) WithDetails(details string) ErrorResponse {
	e.Details = &details
	return e
}

// Equal reports structural equality across both fields, including the
// present/absent distinction on Details.
func (e ErrorResponse) Equal(other ErrorResponse) bool {
	if e.Message != other.Message {
		return false
	}
	if (e.Details == nil) != (other.Details == nil) {
		return false
	}
	return e.Details == nil || *e.Details == *other.Details
}

// MalformedErrorResponseError is returned by ParseErrorResponse when the body
// is not a valid error-response object. It is deliberately a distinct error
// kind rather than an ErrorResponse: a payload we cannot parse means the
// protocol is broken, and recovering it into a default value would hide that.
type MalformedErrorResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedErrorResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed error response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed error response: %s", e.Reason)
}

func (e *MalformedErrorResponseError) Unwrap() error {
	return e.Err
}

// ParseErrorResponse parses the JSON wire form of an ErrorResponse.
// It fails when the input is not a JSON object, when message is missing, null
// or not a string, or when details is present but neither null nor a string.
// A null details is treated as absent and unknown keys are ignored, so newer
// servers can extend the payload without breaking older consumers.
func ParseErrorResponse(data []byte) (ErrorResponse, error) {
	var raw struct {
		Message *string `json:"message"`
		Details *string `json:"details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrorResponse{}, &MalformedErrorResponseError{Reason: "invalid JSON object", Err: err}
	}
	if raw.Message == nil {
		return ErrorResponse{}, &MalformedErrorResponseError{Reason: "missing required field 'message'"}
	}
	return ErrorResponse{Message: *raw.Message, Details: raw.Details}, nil
}
