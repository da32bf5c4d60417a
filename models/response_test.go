package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseSerializeOmitsAbsentDetails(t *testing.T) {
	resp := NewErrorResponse("not found")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"not found"`, string(raw["message"]))
	_, hasDetails := raw["details"]
	assert.False(t, hasDetails, "details key should be omitted when absent")

	parsed, err := ParseErrorResponse(data)
	require.NoError(t, err)
	assert.True(t, resp.Equal(parsed))
}

func TestErrorResponseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		resp ErrorResponse
	}{
		{"message only", NewErrorResponse("not found")},
		{"message and details", NewErrorResponse("bad input").WithDetails("field 'email' is required")},
		{"empty details is preserved", NewErrorResponse("a").WithDetails("")},
		{"empty message", NewErrorResponse("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			require.NoError(t, err)

			parsed, err := ParseErrorResponse(data)
			require.NoError(t, err)
			assert.True(t, tt.resp.Equal(parsed), "round trip changed the value: %+v != %+v", tt.resp, parsed)
		})
	}
}

func TestParseErrorResponseWithDetails(t *testing.T) {
	parsed, err := ParseErrorResponse([]byte(`{"message":"bad input","details":"field 'email' is required"}`))
	require.NoError(t, err)
	assert.Equal(t, "bad input", parsed.Message)
	require.NotNil(t, parsed.Details)
	assert.Equal(t, "field 'email' is required", *parsed.Details)
}

func TestParseErrorResponseIgnoresUnknownKeys(t *testing.T) {
	parsed, err := ParseErrorResponse([]byte(`{"message":"ok","details":"x","code":42,"trace":{"id":"abc"}}`))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(NewErrorResponse("ok").WithDetails("x")))
}

func TestParseErrorResponseNullDetailsIsAbsent(t *testing.T) {
	parsed, err := ParseErrorResponse([]byte(`{"message":"ok","details":null}`))
	require.NoError(t, err)
	assert.Nil(t, parsed.Details)
	assert.True(t, parsed.Equal(NewErrorResponse("ok")))
}

func TestParseErrorResponseMissingMessageFails(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no message key", `{"details":"x"}`},
		{"empty object", `{}`},
		{"null message", `{"message":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseErrorResponse([]byte(tt.input))
			var malformed *MalformedErrorResponseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &malformed), "expected MalformedErrorResponseError, got %T", err)
		})
	}
}

func TestParseErrorResponseTypeStrictness(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"message is a number", `{"message":42}`},
		{"message is a boolean", `{"message":true}`},
		{"message is an array", `{"message":["a"]}`},
		{"message is an object", `{"message":{"text":"a"}}`},
		{"details is a number", `{"message":"ok","details":7}`},
		{"details is an object", `{"message":"ok","details":{}}`},
		{"input is not JSON", `{"message":`},
		{"input is a bare string", `"message"`},
		{"input is an array", `[{"message":"ok"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseErrorResponse([]byte(tt.input))
			var malformed *MalformedErrorResponseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &malformed), "expected MalformedErrorResponseError, got %T", err)
		})
	}
}

func TestErrorResponseEquality(t *testing.T) {
	assert.True(t, NewErrorResponse("a").WithDetails("b").Equal(NewErrorResponse("a").WithDetails("b")))
	assert.True(t, NewErrorResponse("a").Equal(NewErrorResponse("a")))

	// Changing one field while holding the other constant breaks equality.
	assert.False(t, NewErrorResponse("a").WithDetails("b").Equal(NewErrorResponse("x").WithDetails("b")))
	assert.False(t, NewErrorResponse("a").WithDetails("b").Equal(NewErrorResponse("a").WithDetails("x")))

	// Absent details is not the same as empty-string details.
	assert.False(t, NewErrorResponse("a").Equal(NewErrorResponse("a").WithDetails("")))
}
