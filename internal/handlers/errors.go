package handlers

import "errors"

var (
	errInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
	errWindowOrder = errors.New("to date must not be before from date")
)
