package upload

import "errors"

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file size exceeds 3MB limit")
	ErrInvalidMimeType = errors.New("only jpg, png and pdf files are allowed")
	ErrInvalidKind     = errors.New("unknown upload kind")
	ErrNotFound        = errors.New("file not found")
	ErrInvalidName     = errors.New("invalid file name")
)
