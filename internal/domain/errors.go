package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrLoginFailed   = errors.New("login failed")
	ErrInvalidRecipe = errors.New("invalid recipe")
)
