package analyses

import "errors"

var (
	// ErrNotFound indicates no record matches the owner/id pair.
	ErrNotFound = errors.New("analysis not found")

	// ErrUploadFailed indicates the object store rejected the image write.
	ErrUploadFailed = errors.New("image upload failed")

	// ErrSignFailed indicates a signed URL could not be issued for a stored image.
	ErrSignFailed = errors.New("signed url failed")

	// ErrPersistFailed indicates the record could not be written after inference.
	ErrPersistFailed = errors.New("analysis persist failed")
)
