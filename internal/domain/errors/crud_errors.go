package errors

import "errors"

var (
	// ErrUserNotFound indicates the requested user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEventNotFound indicates the requested event does not exist
	ErrEventNotFound = errors.New("event not found")

	// ErrAnnouncementNotFound indicates the requested announcement does not exist
	ErrAnnouncementNotFound = errors.New("announcement not found")
)
