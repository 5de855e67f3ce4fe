package domain

import "errors"

var (
	// ErrDuplicateName is returned when a label name collides
	// case-insensitively with another label.
	ErrDuplicateName = errors.New("label name already exists")
	// ErrEmptyName is returned for a blank label name.
	ErrEmptyName = errors.New("label name is empty")
	// ErrDuplicateID is returned when a record would reuse an ID in use.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrMessageNotFound is returned by lookups that must produce a message.
	ErrMessageNotFound = errors.New("message not found")
	// ErrEmptyReply is returned for a reply without content.
	ErrEmptyReply = errors.New("reply cannot be empty")
)
