package staff

import "errors"

var (
	ErrAccountNotFound = errors.New("staff account not found")
	ErrProfileNotFound = errors.New("employee profile not found")
)
