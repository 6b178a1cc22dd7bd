package model

import "errors"

var (
	// User directory errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Authentication/authorization errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Domain record errors
	ErrExpenseNotFound = errors.New("expense not found")
	ErrOrderNotFound   = errors.New("ad order not found")
	ErrPartyNotFound   = errors.New("party not found")
	ErrPartyExists     = errors.New("party already exists")
	ErrAvatarNotFound  = errors.New("avatar not set")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
