// Package service provides the business logic for the pillbox web
// application: account management, medicine CRUD, and reminder checks.
package service

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed")
)
