package app

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("resource not found")
	ErrForbidden            = errors.New("unauthorized access")
	ErrEmailExists          = errors.New("email already exists")
	ErrSlugExists           = errors.New("slug already exists")
	ErrPasswordConfirmation = errors.New("password confirmation does not match")
	ErrInvalidCredential    = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid or revoked token")
)
