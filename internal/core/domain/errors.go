package domain

import "errors"

var ErrNotFound = errors.New("document not found")
var ErrInvalidID = errors.New("invalid document identifier")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrLoginNotSupported = errors.New("resource does not support login")
