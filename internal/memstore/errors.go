package memstore

import "errors"

var (
	errDuplicateID       = errors.New("duplicate id in scope")
	errDuplicateUsername = errors.New("username already exists")
)
