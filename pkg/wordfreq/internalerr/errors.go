package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingResource = errors.New("missing lexical resource")
	ErrNoResults       = errors.New("no results to export")
)

// MissingResourceError reports a lexical resource (stopword list, lemma
// dictionary, tagger model) that is absent and could not be fetched.
type MissingResourceError struct {
	Name string
	Path string
	Err  error
}

func (e *MissingResourceError) Error() string {
	msg := fmt.Sprintf("missing lexical resource %q", e.Name)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingResourceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMissingResource) hold for every MissingResourceError.
func (e *MissingResourceError) Is(target error) bool {
	return target == ErrMissingResource
}

// Missing is shorthand for building a MissingResourceError.
func Missing(name, path string, err error) error {
	return &MissingResourceError{Name: name, Path: path, Err: err}
}
