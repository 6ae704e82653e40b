package ui

import "errors"

var (
	// ErrOverBudget is returned when segment weights add up to more than the
	// declared total. It signals a caller bug, so nothing is rendered.
	ErrOverBudget = errors.New("segment weights exceed total")

	// ErrInvalidBudget is returned for a negative column budget (including one
	// made negative by prefix/suffix subtraction), a non-positive total or a
	// negative weight.
	ErrInvalidBudget = errors.New("invalid column budget")

	// ErrInvalidColor is returned when a color code is not in the palette.
	ErrInvalidColor = errors.New("invalid color")
)
