package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestRosterCatalog_Lookup(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()
	got, err := catalog.Lookup(context.Background(), finGoalie.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Name != finGoalie.Name {
		t.Fatalf("unexpected player: %+v", got)
	}

	if _, err := catalog.Lookup(context.Background(), 777); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := catalog.Lookup(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterCatalog_Prefetch_AllPositionsFailing(t *testing.T) {
	t.Parallel()

	catalog := NewRosterCatalog(rosterStub{err: errors.New("down")}, 0, nil)
	if _, err := catalog.Prefetch(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRosterCatalog_Prefetch_IndexesEveryPosition(t *testing.T) {
	t.Parallel()

	roster, err := newTestCatalog().Prefetch(context.Background())
	if err != nil {
		t.Fatalf("prefetch: %v", err)
	}
	if len(roster) != 5 {
		t.Fatalf("expected 5 players, got %d", len(roster))
	}
}
