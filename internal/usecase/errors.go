package usecase

import "errors"

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrJobNotActive      = errors.New("job not active")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInternal          = errors.New("internal error")
)
