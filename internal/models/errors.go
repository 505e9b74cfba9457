package models

import "errors"

// Application-wide standard errors
var (
	// User & Credential Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrUnauthorized       = errors.New("unauthorized request")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	// ErrTokenStale marks a refresh token that verified cryptographically but was
	// already rotated away or cleared by logout.
	ErrTokenStale = errors.New("refresh token is expired or used")

	// Upload Errors
	ErrAvatarRequired = errors.New("avatar file is required")
	ErrUploadFailed   = errors.New("file upload failed")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrInvalidInput   = errors.New("invalid input data")
)
