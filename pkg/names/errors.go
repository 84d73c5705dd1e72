package names

import "errors"

var (
	// ErrCorruptDataset is returned when a dataset blob cannot be decoded or
	// contains records with invalid codes.
	ErrCorruptDataset = errors.New("corrupt name dataset")

	// ErrUnsupportedVersion is returned when the blob was written by an
	// incompatible encoder.
	ErrUnsupportedVersion = errors.New("unsupported name dataset version")

	// ErrEncodeDataset is returned when a dataset cannot be serialized.
	ErrEncodeDataset = errors.New("failed to encode name dataset")

	ErrUnknownOrigin = errors.New("unknown origin")
	ErrUnknownGender = errors.New("unknown gender")
	ErrUnknownKind   = errors.New("unknown name kind")
)
