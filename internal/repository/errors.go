// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across repositories so
// higher layers can distinguish failure scenarios: a missing row maps to a
// 404 page while a foreign-key rejection surfaces as a generic failure
// message after the transaction rolls back.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when a show cannot be found in the DB.
var ErrShowNotFound = errors.New("show not found")
