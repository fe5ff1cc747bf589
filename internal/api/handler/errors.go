package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/yahtzee-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decodeBody decodes a JSON request body into target. An empty body leaves
// target unchanged.
func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil && !errors.Is(err, io.EOF) {
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}

// dieIndex reads the {index} path variable
func dieIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, NewInvalidRequestError("Die index must be a number")
	}
	return index, nil
}
