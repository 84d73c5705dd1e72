package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed
	// into the target struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file
	// cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrNilPointer is returned when Load receives a nil pointer.
	ErrNilPointer = errors.New("config: nil pointer")
)
