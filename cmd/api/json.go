package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

// envelope is the uniform response frame: a success flag, a human message and
// the operation payload. Failures carry whatever partial payload was already
// assembled so clients can see what the server understood.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &envelope{
		Success: false,
		Message: message,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, message string, results any) error {
	return writeJSON(w, status, &envelope{
		Success: true,
		Message: message,
		Results: results,
	})
}

func (app *application) failureResponse(w http.ResponseWriter, status int, message string, results any) error {
	return writeJSON(w, status, &envelope{
		Success: false,
		Message: message,
		Results: results,
	})
}
