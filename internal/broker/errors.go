package broker

import (
	"errors"
	"net/http"
)

// APIError is a domain error reported by the broker API. It carries the
// broker's own message so callers can surface it unmodified.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a broker 404, e.g. an unknown symbol or
// order ID.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
