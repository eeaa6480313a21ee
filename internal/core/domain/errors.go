package domain

import "errors"

var ErrEmailTaken = errors.New("email already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNothingToUpdate = errors.New("nothing to update")
var ErrInvalidToken = errors.New("invalid or expired token")
