package model

import (
	"errors"
	"net/http"
)

var (
	ErrFetch          = errors.New("FETCH_ERROR")
	ErrAuthentication = errors.New("AUTHENTICATION_ERROR")
	ErrInvalidData    = errors.New("INVALID_DATA_FOUND")
	ErrWrite          = errors.New("WRITE_ERROR")
	ErrRateLimit      = errors.New("RATE_LIMIT_REACHED")
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAPIError converts a pipeline error into the payload returned by the http api
// wrapped errors are matched against the sentinels above
func NewAPIError(errReason error) APIError {
	switch {
	case errors.Is(errReason, ErrRateLimit):
		return APIError{
			Code:    ErrRateLimit.Error(),
			Message: "a card was rendered recently. wait a few seconds and try again",
		}

	case errors.Is(errReason, ErrAuthentication):
		return APIError{
			Code:    ErrAuthentication.Error(),
			Message: "github rejected the credential. check the GITHUB_TOKEN value",
		}

	case errors.Is(errReason, ErrFetch), errors.Is(errReason, ErrInvalidData), errors.Is(errReason, ErrWrite):
		return APIError{
			Code:    rootCode(errReason),
			Message: "internal server error. contact our support with the reason code for assistance",
		}
	}

	return APIError{
		Code:    "GENERIC_ERROR",
		Message: "internal server error. contact our support with the reason code for assistance",
	}
}

// HTTPStatus is the status code matching the error code
func (e APIError) HTTPStatus() int {
	switch e.Code {
	case ErrRateLimit.Error():
		return http.StatusTooManyRequests
	case ErrAuthentication.Error():
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func rootCode(err error) string {
	for _, sentinel := range []error{ErrFetch, ErrInvalidData, ErrWrite} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return "GENERIC_ERROR"
}
