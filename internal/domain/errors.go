package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// agency or trip does not exist. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (blank name, malformed slug, unknown collection).
// Handlers map it to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repo functions when a write violates a unique
// constraint, most often a slug already taken in the same collection.
// Services retry slug conflicts; anything left over maps to HTTP 409.
var ErrConflict = errors.New("conflict")
