package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidRelation = errors.New("invalid relation")
	ErrDuplicateKey    = errors.New("duplicate key")
)
