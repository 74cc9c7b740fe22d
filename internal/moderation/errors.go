package moderation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/qaforum/qaforum-go/internal/apperr"
)

var (
	ErrDecode             = apperr.New(apperr.KindExternal, "cannot decode moderation response")
	ErrTransientExhausted = apperr.New(apperr.KindExternal, "moderation service unreachable")
	ErrMissingBaseURL     = errors.New("moderation base url is required")
	ErrMissingAPIKey      = errors.New("moderation api key is required")
)

// Fault tells whether a failed moderation call was the caller's fault or
// the upstream service's.
type Fault uint8

const (
	ClientFault Fault = iota
	ServerFault
)

func (f Fault) String() string {
	if f == ServerFault {
		return "server"
	}
	return "client"
}

// FilterError is a non-success answer from the moderation service.
type FilterError struct {
	Status  int
	Message string
}

func newFilterError(status int, message string) *FilterError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &FilterError{Status: status, Message: message}
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("moderation %s error (status %d): %s", e.Fault(), e.Status, e.Message)
}

// Fault classifies the error by status: below 500 is a client fault.
func (e *FilterError) Fault() Fault {
	if e.Status < http.StatusInternalServerError {
		return ClientFault
	}
	return ServerFault
}

// ErrorKind reports the error category.
func (e *FilterError) ErrorKind() apperr.Kind { return apperr.KindExternal }

// transportError marks a failure that never produced an HTTP response.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }
