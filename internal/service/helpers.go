package service

import (
	"errors"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
