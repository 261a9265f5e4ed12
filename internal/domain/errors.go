package domain

import "errors"

// Sentinel errors for the meal catalog. Callers match with errors.Is;
// the HTTP layer maps them onto status codes.
var (
	ErrMealNotFound      = errors.New("meal not found")
	ErrDuplicateMeal     = errors.New("meal already exists")
	ErrMealDeleted       = errors.New("meal has been deleted")
	ErrInvalidPrice      = errors.New("price must be a positive number")
	ErrInvalidDifficulty = errors.New("difficulty must be LOW, MED or HIGH")
	ErrInvalidName       = errors.New("meal name must not be empty")
	ErrInvalidCuisine    = errors.New("cuisine must not be empty")
	ErrInvalidSortField  = errors.New("sort field must be wins or win_pct")
	ErrInvalidOutcome    = errors.New("outcome must be win or loss")
)
