package repository

import "errors"

// ErrNotFound is returned by Update and Delete when no row matched the id
// inside the caller's tenant
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned by Create when a unique key such as a document
// number is already taken
var ErrConflict = errors.New("record already exists")
