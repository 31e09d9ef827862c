package models

import "errors"

var (
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidLanguage   = errors.New("invalid language")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidConfidence = errors.New("confidence must be within [0,100]")
	ErrInvalidRole       = errors.New("invalid message role")
	ErrInvalidSource     = errors.New("invalid answer source")
	ErrEmptyContent      = errors.New("content must not be empty")
	ErrNoKeywords        = errors.New("forbidden topic needs at least one keyword")
)
