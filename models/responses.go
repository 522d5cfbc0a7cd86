package models

import "time"

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	// Code is the stable, machine-readable error code (e.g. VALIDATION_ERROR).
	Code string `json:"code"`

	// Message is the human-readable description of the failure.
	Message string `json:"message"`

	// Errors maps field names to per-field validation messages.
	Errors map[string]string `json:"errors,omitempty"`
}

// Response is the uniform envelope wrapping every JSON body the API emits.
// Exactly one of Data and Error is set, depending on Success.
type Response struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Message   string     `json:"message,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// Success builds a successful envelope around data.
func Success(data any, message string) Response {
	return Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// Failure builds an error envelope.
func Failure(body ErrorBody, message string) Response {
	return Response{
		Success:   false,
		Error:     &body,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
