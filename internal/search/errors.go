package search

import "errors"

// ErrEmptyKeyword is returned when search keyword is blank.
var ErrEmptyKeyword = errors.New("search keyword is required")
