package utils

import (
	"fmt"
	"net/http"
)

// APIError is an error that maps onto an HTTP status and an envelope message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Status, e.Message)
}

func New(status int, message string) error {
	return &APIError{
		Status:  status,
		Message: message,
	}
}

// BadRequest and NotFound cover the two failure statuses the API uses.
func BadRequest(message string) error { return New(http.StatusBadRequest, message) }

func NotFound(message string) error { return New(http.StatusNotFound, message) }
