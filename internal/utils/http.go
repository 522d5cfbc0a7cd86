package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.Success(item, ""), http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteSuccess writes a success envelope around data.
func WriteSuccess(w http.ResponseWriter, statusCode int, data any, message string) (int, error) {
	return WriteJSON(w, models.Success(data, message), statusCode)
}

// WriteError writes the envelope for e using its status, code, message and
// field errors.
func WriteError(w http.ResponseWriter, e *apierr.Error) (int, error) {
	body := models.ErrorBody{
		Code:    e.Code(),
		Message: e.Message(),
		Errors:  e.Fields(),
	}
	return WriteJSON(w, models.Failure(body, e.Message()), e.Status())
}
