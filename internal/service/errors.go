package service

import "errors"

var (
	ErrPasteNotFound = errors.New("paste not found")
	ErrInvalidPin    = errors.New("invalid pin")
)
