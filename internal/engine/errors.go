package engine

import "errors"

var (
	// ErrInvalidText is returned for character events that are not valid UTF-8.
	// The input buffer is left unchanged.
	ErrInvalidText = errors.New("invalid text encoding")
	// ErrEmptyCorpus is returned when a passage is requested from an empty corpus.
	ErrEmptyCorpus = errors.New("corpus has no passages")
)
