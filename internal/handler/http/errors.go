package http

import "errors"

var (
	ErrInvalidJSON      = errors.New("request body is not valid json")
	ErrTreeMustBeObject = errors.New("tree must be a json object")
	ErrRequestTimedOut  = errors.New("operation did not finish before the request timeout")
)
