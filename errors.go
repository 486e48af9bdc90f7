package decorateall

import "errors"

var (
	ErrNilClass       = errors.New("class must not be nil")
	ErrNilDecorator   = errors.New("decorator must not be nil")
	ErrMethodNotFound = errors.New("method not found")
	ErrNotCallable    = errors.New("member is not callable")
)
