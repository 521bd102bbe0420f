// Package server provides the HTTP REST API for the resume maker.
package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPaymentRequired indicates the free tier is exhausted
type ErrPaymentRequired struct{}

func (e *ErrPaymentRequired) Error() string {
	return "payment required for unlimited access"
}

// ErrUnauthorized indicates a missing or wrong admin key
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized"
}

// ErrProviderUnavailable indicates a payment provider without credentials
type ErrProviderUnavailable struct {
	Provider string
}

func (e *ErrProviderUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Provider)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrPaymentRequired:
		return http.StatusPaymentRequired
	case *ErrUnauthorized:
		return http.StatusUnauthorized
	case *ErrProviderUnavailable:
		return http.StatusServiceUnavailable
	case *ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
