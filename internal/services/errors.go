package services

import "errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrSessionCreationFailed = errors.New("session creation failed")
	ErrSessionUpdateFailed   = errors.New("session update failed")
)
