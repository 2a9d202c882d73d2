package handler

import "errors"

var (
	// ErrUnknownCommand is returned when message contains command which can't be handled.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidCommand is returned when command misses required fields.
	ErrInvalidCommand = errors.New("invalid command")
)
