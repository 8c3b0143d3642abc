package apperror

import "errors"

var (
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrInvalidStep    = errors.New("invalid history step")
	ErrUnknownAction  = errors.New("unknown action")
	ErrUnknownIntent  = errors.New("unknown intent")
	ErrMalformedInput = errors.New("malformed input")
)
