package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMealNotFound   = errors.New("meal not found")
	ErrAuthorNotFound = errors.New("author does not reference an existing user")
)
