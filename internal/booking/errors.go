package booking

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventStarted      = errors.New("event already started")
	ErrEventFull         = errors.New("no places left")
	ErrAlreadyRegistered = errors.New("user already registered for this event")
	ErrAlreadyOnWaitlist = errors.New("user already has a waitlist entry for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)
