package resume

import "errors"

var (
	ErrFileTooLarge    = errors.New("resume exceeds maximum allowed size")
	ErrInvalidFileType = errors.New("resume file type is not allowed")
)
