package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for session operations.
var (
	ErrNotFound          = errors.New("session not found")
	ErrNoFile            = errors.New("no file selected")
	ErrEmptyText         = errors.New("text buffer is blank")
	ErrNoResult          = errors.New("no proofreading result available")
	ErrUploadInFlight    = errors.New("upload already in flight")
	ErrProofreadInFlight = errors.New("proofreading already in flight")
	ErrAnalyzeInFlight   = errors.New("analysis already in flight")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file exceeds maximum upload size")
	ErrInvalidFile       = errors.New("invalid file")
)

// MapHTTPStatus maps session domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUploadInFlight),
		errors.Is(err, ErrProofreadInFlight),
		errors.Is(err, ErrAnalyzeInFlight),
		errors.Is(err, ErrNoResult):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyText), errors.Is(err, ErrNoFile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
