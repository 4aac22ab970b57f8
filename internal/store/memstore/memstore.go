// Package memstore is an in-process slot. Nothing survives the process.
package memstore

import (
	"context"
	"sync"
)

// Slot keeps blobs in a map.
type Slot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func New() *Slot {
	return &Slot{data: make(map[string][]byte)}
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}
