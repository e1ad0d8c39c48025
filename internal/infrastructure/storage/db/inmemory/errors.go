package inmemory

import "errors"

var (
	// ErrDuplicateKey ...
	ErrDuplicateKey = errors.New("entity with the same id already stored")
)
