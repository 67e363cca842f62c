// Package typed provides a generic, type-safe view of entry metadata.
//
// Entries carry free-form metadata maps. The wrapper here converts those
// maps to and from a caller-supplied struct type, so application code works
// with real fields instead of map lookups and type assertions.
package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/silo/pkg/core"
)

// Model pairs a stored entry with its metadata decoded into T.
type Model[T any] struct {
	Entry core.Entry
	Data  T
}

// Service wraps a core.Service to provide type-safe metadata access.
type Service[T any] struct {
	svc *core.Service
}

// NewService creates a new typed service wrapper.
func NewService[T any](svc *core.Service) *Service[T] {
	return &Service[T]{svc: svc}
}

// Add stores an entry whose metadata is built from data. Any Metadata
// already set on the request is replaced.
func (s *Service[T]) Add(ctx context.Context, req core.AddRequest, data T) (*Model[T], error) {
	meta, err := toMetadata(data)
	if err != nil {
		return nil, err
	}
	req.Metadata = meta

	entry, err := s.svc.Add(ctx, req)
	if err != nil {
		return nil, err
	}
	return fromEntry[T](*entry)
}

// Get retrieves one entry and decodes its metadata.
func (s *Service[T]) Get(ctx context.Context, id string) (*Model[T], error) {
	entry, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromEntry[T](*entry)
}

// List retrieves entries and decodes each entry's metadata.
func (s *Service[T]) List(ctx context.Context, req core.ListRequest) ([]*Model[T], error) {
	entries, err := s.svc.List(ctx, req)
	if err != nil {
		return nil, err
	}

	result := make([]*Model[T], 0, len(entries))
	for _, e := range entries {
		model, err := fromEntry[T](e)
		if err != nil {
			return nil, err
		}
		result = append(result, model)
	}
	return result, nil
}

// Update patches an entry. A nil data leaves the metadata unchanged.
func (s *Service[T]) Update(ctx context.Context, req core.UpdateRequest, data *T) (*Model[T], error) {
	if data != nil {
		meta, err := toMetadata(*data)
		if err != nil {
			return nil, err
		}
		req.Metadata = meta
	}

	entry, err := s.svc.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	return fromEntry[T](*entry)
}

// Delete removes an entry and reports how many remain.
func (s *Service[T]) Delete(ctx context.Context, id string) (int, error) {
	return s.svc.Delete(ctx, id)
}

// Watch observes changes to the storage file.
func (s *Service[T]) Watch(ctx context.Context) (<-chan core.Event, error) {
	return s.svc.Watch(ctx)
}

// toMetadata converts a typed value into the metadata map shape via JSON.
func toMetadata(data any) (core.Metadata, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal failed: %w", err)
	}
	var meta core.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return meta, nil
}

// fromEntry decodes an entry's metadata into T.
func fromEntry[T any](e core.Entry) (*Model[T], error) {
	model := &Model[T]{Entry: e}
	if len(e.Metadata) == 0 {
		return model, nil
	}

	raw, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal failed: %w", err)
	}
	if err := json.Unmarshal(raw, &model.Data); err != nil {
		return nil, fmt.Errorf("metadata does not match %T: %w", model.Data, err)
	}
	return model, nil
}
