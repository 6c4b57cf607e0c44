package notify

import "errors"

var (
	errMissingRecipient = errors.New("dispatch job has no recipient")
	errMissingBody      = errors.New("dispatch job has no body")
	errUnknownChannel   = errors.New("dispatch job has unknown channel")
)
