// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for the catalog failure taxonomy. Handlers match on these
// with errors.Is to pick an HTTP status; the typed wrappers below carry the
// detail that ends up in the response body.
var (
	ErrNotFound   = errors.New("catalog: not found")
	ErrConflict   = errors.New("catalog: conflict")
	ErrValidation = errors.New("catalog: validation failed")
)

// NotFoundError reports a write that referenced an entity that does not
// exist: an unknown mutation target or a dangling subject reference.
// Plain reads never return it; they signal absence with a nil entity.
type NotFoundError struct {
	Entity string // "subject" or "article"
	Key    string // id or slug that missed
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrNotFound.Error(), e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a uniqueness violation, always a duplicate slug.
type ConflictError struct {
	Entity string
	Slug   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s slug %q already exists", ErrConflict.Error(), e.Entity, e.Slug)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError reports rejected input. The write is not applied at all.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
