package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrChemicalNotFound       = errors.New("chemical not found")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrSDSNotFound            = errors.New("sds file not found")
	ErrSourceUnavailable      = errors.New("source document unavailable")
	ErrTemporary              = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
