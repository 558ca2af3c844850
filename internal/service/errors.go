package service

import "errors"

var (
	ErrUserNotFound        = errors.New("user_not_found")
	ErrSessionNotFound     = errors.New("session_not_found")
	ErrSessionExpired      = errors.New("session_expired")
	ErrUsernameTaken       = errors.New("username_taken")
	ErrFailedLogin         = errors.New("failed_login")
	ErrTransactionNotFound = errors.New("transaction_not_found")
)
