package services

import "errors"

var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrInvalidGroupPassword = errors.New("incorrect password")
	ErrNotGroupMember       = errors.New("user is not a member of this group")

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("invalid file name")
)
