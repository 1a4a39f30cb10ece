package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("tracking record not found")
	ErrStoreClosed    = errors.New("tracking store is closed")
)
