package domain

import "errors"

// Validation errors. None of them mutate state.
var (
	ErrEmptyEmail = errors.New("please enter an email")
	ErrEmptyURL   = errors.New("please enter a URL")
	ErrInvalidURL = errors.New("please enter a valid URL")
	ErrNoSession  = errors.New("please login first")
)
