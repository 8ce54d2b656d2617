package services

import (
	"errors"

	"klarfix/pkg/apperrors"
)

// translate maps a repository sentinel to its AppError; anything else is internal.
func translate(err error, sentinel error, appErr *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel) {
		return appErr
	}
	var existing *apperrors.AppError
	if errors.As(err, &existing) {
		return existing
	}
	return apperrors.InternalError(err)
}

// passThrough keeps AppErrors returned from inside transactions and wraps the rest.
func passThrough(err error) error {
	if err == nil {
		return nil
	}
	var existing *apperrors.AppError
	if errors.As(err, &existing) {
		return existing
	}
	return apperrors.InternalError(err)
}
