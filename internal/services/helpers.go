package services

import (
	stderrors "errors"

	"github.com/vytor/mathverse/internal/repository"
)

func isValidation(err error) bool {
	return stderrors.Is(err, repository.ErrInvalidProgress)
}
