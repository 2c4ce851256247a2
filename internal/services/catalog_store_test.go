package services

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"

	"normadeck/internal/domain/models"
)

type listerFunc func(ctx context.Context) ([]models.Norma, error)

func (f listerFunc) List(ctx context.Context) ([]models.Norma, error) { return f(ctx) }

func TestCatalogStore_StaleLoadNeverWins(t *testing.T) {
	oldSet := []models.Norma{{ID: "old"}}
	newSet := []models.Norma{{ID: "new"}}

	release := make(chan struct{})
	var calls int32
	store := &CatalogStore{Lister: listerFunc(func(ctx context.Context) ([]models.Norma, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return oldSet, nil
		}
		return newSet, nil
	})}

	done := make(chan error, 1)
	go func() { done <- store.Load(context.Background()) }()
	for atomic.LoadInt32(&calls) == 0 {
		runtime.Gosched()
	}

	// a later load finishes first
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first load: %v", err)
	}

	got := store.Records()
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("stale load overwrote newer records: %v", got)
	}
}

func TestCatalogStore_RecordsReturnsACopy(t *testing.T) {
	store := &CatalogStore{Lister: listerFunc(func(ctx context.Context) ([]models.Norma, error) {
		return []models.Norma{{ID: "1", Nome: "A"}}, nil
	})}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	snapshot := store.Records()
	snapshot[0].Nome = "mutated"

	if store.Records()[0].Nome != "A" {
		t.Fatalf("consumers must not be able to mutate the held set")
	}
}
