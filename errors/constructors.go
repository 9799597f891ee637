package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *MoorError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *MoorError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StoreReadFailed creates a store read failure error
func StoreReadFailed(key string, err error) *MoorError {
	return Wrap(err, ErrCodeStoreRead, fmt.Sprintf("failed to read state for project '%s'", key)).
		WithDetail("project", key)
}

// StoreWriteFailed creates a store write failure error
func StoreWriteFailed(key string, err error) *MoorError {
	return Wrap(err, ErrCodeStoreWrite, fmt.Sprintf("failed to write state for project '%s'", key)).
		WithDetail("project", key)
}

// DecodeFailed creates a decode failure error for a stored entry
func DecodeFailed(list string, index int, err error) *MoorError {
	return Wrap(err, ErrCodeDecodeFailed,
		fmt.Sprintf("failed to decode entry %d of list '%s'", index, list)).
		WithDetail("list", list).
		WithDetail("index", index)
}

// EncodeFailed creates an encode failure error for a list item
func EncodeFailed(list string, index int, err error) *MoorError {
	return Wrap(err, ErrCodeEncodeFailed,
		fmt.Sprintf("failed to encode item %d of list '%s'", index, list)).
		WithDetail("list", list).
		WithDetail("index", index)
}

// IndexRange creates an out-of-range index error
func IndexRange(list string, index, length int) *MoorError {
	return New(ErrCodeIndexRange,
		fmt.Sprintf("index %d out of range for list '%s' of length %d", index, list, length)).
		WithDetail("list", list).
		WithDetail("index", index).
		WithDetail("length", length)
}

// BadPermutation creates an invalid reorder permutation error
func BadPermutation(list string, reason string) *MoorError {
	return New(ErrCodeBadPermutation,
		fmt.Sprintf("invalid permutation for list '%s': %s", list, reason)).
		WithDetail("list", list)
}

// InvalidSelection creates an invalid selection error
func InvalidSelection(reason string) *MoorError {
	return New(ErrCodeInvalidSelection, fmt.Sprintf("invalid selection: %s", reason))
}

// HostAttach creates a host attach failure error
func HostAttach(err error) *MoorError {
	return Wrap(err, ErrCodeHostAttach, "failed to attach to host editor")
}
