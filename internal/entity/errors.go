package entity

import "errors"

var (
	ErrIncorrectRequestBody = errors.New("incorrect request body")
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrAssistantBusy        = errors.New("assistant is busy")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrUnsupportedFile      = errors.New("unsupported file type")
)
