package shardedmap

import "fmt"

type Error interface {
	// returns true if the error is fatal
	IsFatal() bool
	// and anything else that is needed to be an error
	error
}

// MalformedEncodingError is returned when bytes do not decode to a valid
// node: unknown head flags, truncated stream, trailing bytes, broken
// canonical ordering, or an embedded value failing its own decode.
// It is never coerced to an empty node.
type MalformedEncodingError struct {
	err error
}

// NewMalformedEncodingError constructs a MalformedEncodingError
func NewMalformedEncodingError(err error) *MalformedEncodingError {
	return &MalformedEncodingError{err: err}
}

// NewMalformedEncodingErrorf constructs a MalformedEncodingError from a format string
func NewMalformedEncodingErrorf(msg string, args ...interface{}) *MalformedEncodingError {
	return &MalformedEncodingError{err: fmt.Errorf(msg, args...)}
}

func (e *MalformedEncodingError) Error() string {
	return fmt.Sprintf("malformed node encoding: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *MalformedEncodingError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *MalformedEncodingError) Unwrap() error {
	return e.err
}

// BlobNotFoundError is returned when a referenced node identifier has no
// corresponding entry in the blob store. It is surfaced, not retried;
// retry policy for transient unavailability belongs to the store.
type BlobNotFoundError struct {
	key string
}

// NewBlobNotFoundError constructs a BlobNotFoundError
func NewBlobNotFoundError(key string) *BlobNotFoundError {
	return &BlobNotFoundError{key: key}
}

func (e *BlobNotFoundError) Error() string {
	return fmt.Sprintf("blob is missing: %s", e.key)
}

// IsFatal returns true if the error is fatal
func (e *BlobNotFoundError) IsFatal() bool {
	return true
}

// CorruptBlobError is returned when a blob was found but failed to decode.
// It is distinct from BlobNotFoundError so callers can tell store
// corruption apart from incomplete writes.
type CorruptBlobError struct {
	key string
	err error
}

// NewCorruptBlobError constructs a CorruptBlobError
func NewCorruptBlobError(key string, err error) *CorruptBlobError {
	return &CorruptBlobError{key: key, err: err}
}

func (e *CorruptBlobError) Error() string {
	return fmt.Sprintf("blob %s is corrupt: %s", e.key, e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *CorruptBlobError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *CorruptBlobError) Unwrap() error {
	return e.err
}

// EncodingError is returned when an encoding operation fails
type EncodingError struct {
	err error
}

// NewEncodingError constructs an EncodingError
func NewEncodingError(err error) *EncodingError {
	return &EncodingError{err: err}
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding has failed: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *EncodingError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *EncodingError) Unwrap() error {
	return e.err
}

// StorageError is returned when the underlying blob store fails
type StorageError struct {
	err error
}

// NewStorageError constructs a StorageError
func NewStorageError(err error) *StorageError {
	return &StorageError{err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failed: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *StorageError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *StorageError) Unwrap() error {
	return e.err
}

// DuplicateKeyError is returned when constructing a node or building a
// map from entries whose keys are not unique and strictly ascending
type DuplicateKeyError struct {
	key []byte
}

// NewDuplicateKeyError constructs a DuplicateKeyError
func NewDuplicateKeyError(key []byte) *DuplicateKeyError {
	return &DuplicateKeyError{key: key}
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate or unsorted key %q", e.key)
}

// IsFatal returns true if the error is fatal
func (e *DuplicateKeyError) IsFatal() bool {
	return false
}
