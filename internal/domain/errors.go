package domain

import "errors"

var (
	ErrNoImage              = errors.New("no image file provided")
	ErrUnsupportedMedia     = errors.New("only image files are allowed")
	ErrUploadTooLarge       = errors.New("upload exceeds size limit")
	ErrMissingCredential    = errors.New("missing credential")
	ErrEmptyPrompt          = errors.New("prompt is required")
	ErrBackendsExhausted    = errors.New("all image backends failed")
	ErrNoBackendsConfigured = errors.New("no image backends configured")
)
