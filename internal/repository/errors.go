// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors: ErrEmailExists maps to a 400
// ("Email already in use") and ErrNotFound to a 404.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would violate the
// unique constraint on users.email.
var ErrEmailExists = errors.New("email already in use")

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")
