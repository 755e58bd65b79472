// Package errors defines the sentinel errors shared across mobdef and small
// helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Settings errors.
	ErrEmptySettingsPath  = fmt.Errorf("settings file path cannot be empty")
	ErrSettingsParse      = fmt.Errorf("failed to parse settings")
	ErrSettingsValidation = fmt.Errorf("invalid settings")
	ErrMissingDefaultRepo = fmt.Errorf("missing default repository setting")
	ErrRepositoryNotFound = fmt.Errorf("repository not found")
	ErrDefinitionNotFound = fmt.Errorf("definition does not exist")

	// Index errors.
	ErrIndexFetch = fmt.Errorf("failed to fetch repository index")
	ErrIndexParse = fmt.Errorf("failed to parse repository index")

	// Lock file errors.
	ErrLockWrite = fmt.Errorf("failed to write lock file")
	ErrLockLoad  = fmt.Errorf("failed to load lock file")

	// Download errors.
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrInvalidPath      = fmt.Errorf("invalid path")
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")

	// Resolution errors.
	ErrResolutionDeclined = fmt.Errorf("resolution aborted after warnings")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
