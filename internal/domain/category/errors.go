package category

import "errors"

var (
	// ErrUnknownCategory indicates a category outside work/neutral/unproductive.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEmptyDomain indicates a category operation without a domain.
	ErrEmptyDomain = errors.New("domain required")
)
