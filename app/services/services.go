package services

import (
	"errors"

	"yatube/app/apperrors"
)

// notFound replaces a repository not-found error with a message naming what
// was missing. Other errors pass through.
func notFound(err error, message string) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewResourceNotFoundError(message)
	}
	return err
}
