// Package respond defines the canonical response vocabulary every workflow
// maps into, so the HTTP layer never branches on workflow-specific types.
package respond

import (
	"net/http"

	"tv-gateway/internal/httputil"
)

type Kind int

const (
	KindOk Kind = iota
	KindCreated
	KindNoContent
	KindNotFound
	KindProblem
)

// Outcome is the result of one workflow invocation. Build it with the
// constructors below and hand it to Write.
type Outcome struct {
	kind     Kind
	payload  any
	location string
	message  string
}

func Ok(payload any) Outcome {
	return Outcome{kind: KindOk, payload: payload}
}

func Created(location string, payload any) Outcome {
	return Outcome{kind: KindCreated, location: location, payload: payload}
}

func NoContent() Outcome {
	return Outcome{kind: KindNoContent}
}

func NotFound() Outcome {
	return Outcome{kind: KindNotFound}
}

// Problem reports a business-rule or remote failure with a human-readable
// message. All such failures share one non-2xx status.
func Problem(message string) Outcome {
	return Outcome{kind: KindProblem, message: message}
}

func (o Outcome) Kind() Kind      { return o.kind }
func (o Outcome) Payload() any    { return o.payload }
func (o Outcome) Location() string { return o.location }
func (o Outcome) Message() string { return o.message }

func (o Outcome) Write(w http.ResponseWriter) {
	switch o.kind {
	case KindOk:
		httputil.WriteJSON(w, http.StatusOK, o.payload)
	case KindCreated:
		w.Header().Set("Location", o.location)
		httputil.WriteJSON(w, http.StatusCreated, o.payload)
	case KindNoContent:
		w.WriteHeader(http.StatusNoContent)
	case KindNotFound:
		w.WriteHeader(http.StatusNotFound)
	case KindProblem:
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.ErrorResponse{Error: o.message})
	}
}
