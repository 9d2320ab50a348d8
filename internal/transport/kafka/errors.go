package kafka

import "errors"

// permanentError marks a handler failure that redelivery cannot fix.
type permanentError struct{ err error }

func (e permanentError) Error() string {
	if e.err == nil {
		return "kafka: permanent failure"
	}
	return "kafka: permanent failure: " + e.err.Error()
}

func (e permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the consumer commits the offset instead of retrying.
// A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// IsPermanent reports whether err, or anything it wraps, came from Permanent.
func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
