package domain

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCourseNotFound   = errors.New("course not found")
	ErrLoadFailure      = errors.New("catalog load failed")
)
