package service

import "errors"

var (
	ErrNoDataProvided      = errors.New("no data provided")
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
