package repositories

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrJobNotFound          = errors.New("job not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrTemplateNotFound     = errors.New("email template not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
