package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrHashingPassword       = errors.New("error hashing password")
)

// Client-facing messages produced by the services.
const (
	MsgUserExists         = "An account with this email already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidToken       = "Invalid or expired token"
	MsgUserNotFound       = "User not found"
	MsgItemNotFound       = "Item not found"
	MsgNotItemOwner       = "Not authorized"
)
