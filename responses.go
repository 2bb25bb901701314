package main

import (
	"errors"

	"github.com/ttpr0/go-trip/routing"
	"github.com/ttpr0/go-trip/trip"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Maps request errors to error codes, unknown errors result in an internal error.
func ErrorResult(err error) Result {
	codes := []struct {
		target error
		code   string
	}{
		{trip.ErrTooBig, "TooBig"},
		{trip.ErrInvalidValue, "InvalidValue"},
		{trip.ErrNoSegment, "NoSegment"},
		{trip.ErrNoTrips, "NoTrips"},
		{trip.ErrUnroutable, "NoRoute"},
		{routing.ErrNoPath, "NoRoute"},
		{ErrInvalidOptions, "InvalidOptions"},
		{ErrProfileNotFound, "InvalidOptions"},
	}
	for _, c := range codes {
		if errors.Is(err, c.target) {
			return BadRequest(ErrorBody{Code: c.code, Message: err.Error()})
		}
	}
	return InternalError(ErrorBody{Code: "InternalError", Message: err.Error()})
}
