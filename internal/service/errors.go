package service

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("content-type must be application/json")
	ErrInvalidJSON          = errors.New("invalid json")
	ErrMissingFields        = errors.New("prompt, image and mask are required")
	ErrUnexpectedResponse   = errors.New("unexpected model response")
)

// UnexpectedResponseError carries the upstream body that could not be normalized.
type UnexpectedResponseError struct {
	ContentType string
	Body        []byte
}

func (e *UnexpectedResponseError) Error() string {
	return ErrUnexpectedResponse.Error()
}

func (e *UnexpectedResponseError) Unwrap() error {
	return ErrUnexpectedResponse
}
