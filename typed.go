package silo

import (
	"github.com/aretw0/silo/pkg/core"
	"github.com/aretw0/silo/pkg/typed"
)

// TypedModel pairs a stored entry with its metadata decoded into T.
// It is the generic equivalent of a raw Entry plus Metadata.
type TypedModel[T any] = typed.Model[T]

// TypedService wraps a Service to provide type-safe metadata access.
// It converts between raw metadata maps and typed structs.
type TypedService[T any] = typed.Service[T]

// NewTyped creates a new type-safe wrapper around an existing service.
// T is the struct type stored in the entry metadata.
func NewTyped[T any](svc *core.Service) *TypedService[T] {
	return typed.NewService[T](svc)
}

// OpenTyped simplifies creating a TypedService from a path.
func OpenTyped[T any](path string, opts ...Option) (*TypedService[T], error) {
	svc, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	return typed.NewService[T](svc), nil
}
