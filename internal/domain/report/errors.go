package report

import "errors"

var (
	// ErrInvalidArchive indicates an import document missing required records.
	ErrInvalidArchive = errors.New("invalid archive: missing timeData or siteCategories")
)
