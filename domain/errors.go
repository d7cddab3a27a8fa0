package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrMissingIdentifier = errors.New("record has no identifier")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnsupportedWallet = errors.New("unsupported wallet")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidToken   = errors.New("Invalid token")
	ErrInvalidAmount  = errors.New("Invalid amount")
)
