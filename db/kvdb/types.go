package kvdb

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrEmptyKey      = errors.New("key cannot be empty")
	ErrUnknownBucket = errors.New("unknown bucket")
)

// OpError records which store operation failed and on what.
type OpError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("kvdb %s %s: %s", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("kvdb %s %s/%s: %s", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
