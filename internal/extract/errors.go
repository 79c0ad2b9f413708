package extract

import "errors"

// Extraction failures are sentinel errors so callers can map each one to an
// actionable user-facing message.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrParseFailure        = errors.New("document parse failure")
	ErrInsufficientText    = errors.New("insufficient text")
	ErrReadFailure         = errors.New("file read failure")
)
