package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidStage       = errors.New("unknown stage")
	ErrInvalidLookupKind  = errors.New("unknown lookup kind")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already registered")
)
