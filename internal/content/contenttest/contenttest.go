// Package contenttest provides content stores for tests.
package contenttest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"portfolio-backend/internal/content"
)

var ErrUnavailable = errors.New("content store unavailable")

// NewSQLite opens an in-memory store closed at the end of the test.
func NewSQLite(t testing.TB) *content.SQLiteStore {
	t.Helper()
	store, err := content.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// Flaky wraps a store and fails the operations of the listed document types
// while Down is set.
type Flaky struct {
	content.Store

	mu    sync.Mutex
	down  map[string]bool
	calls map[string]int
}

func NewFlaky(store content.Store) *Flaky {
	return &Flaky{Store: store, down: map[string]bool{}, calls: map[string]int{}}
}

func (f *Flaky) SetDown(docType string, down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down[docType] = down
}

// Fetches reports how many times the given type was listed.
func (f *Flaky) Fetches(docType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[docType]
}

func (f *Flaky) check(docType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down[docType] {
		return ErrUnavailable
	}
	return nil
}

func (f *Flaky) Fetch(ctx context.Context, q content.Query) ([]content.Document, error) {
	f.mu.Lock()
	f.calls[q.Type]++
	f.mu.Unlock()
	if err := f.check(q.Type); err != nil {
		return nil, err
	}
	return f.Store.Fetch(ctx, q)
}

func (f *Flaky) Create(ctx context.Context, docType string, doc content.Document) (string, error) {
	if err := f.check(docType); err != nil {
		return "", err
	}
	return f.Store.Create(ctx, docType, doc)
}

func (f *Flaky) Patch(ctx context.Context, docType, id string, set content.Document) error {
	if err := f.check(docType); err != nil {
		return err
	}
	return f.Store.Patch(ctx, docType, id, set)
}

func (f *Flaky) Delete(ctx context.Context, docType, id string) error {
	if err := f.check(docType); err != nil {
		return err
	}
	return f.Store.Delete(ctx, docType, id)
}
