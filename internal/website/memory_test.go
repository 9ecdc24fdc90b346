package website

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testRecord(id, url string, createdAt time.Time) *Record {
	return &Record{
		ID:        id,
		URL:       url,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryInsertEnforcesURLUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	if err := repo.Insert(ctx, testRecord("a", "https://example.com", now)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	err := repo.Insert(ctx, testRecord("b", "https://example.com", now))
	if !errors.Is(err, ErrURLExists) {
		t.Errorf("Insert() duplicate URL error = %v, want ErrURLExists", err)
	}
}

func TestMemoryListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		rec := testRecord(id, "https://example.com/"+id, base.Add(time.Duration(i)*time.Hour))
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(records))
	}
	for i, want := range []string{"new", "mid", "old"} {
		if records[i].ID != want {
			t.Errorf("List()[%d].ID = %q, want %q", i, records[i].ID, want)
		}
	}
}

func TestMemoryFindByURLMiss(t *testing.T) {
	repo := NewMemoryRepository()
	rec, err := repo.FindByURL(context.Background(), "https://nowhere.example")
	if err != nil {
		t.Fatalf("FindByURL() error = %v", err)
	}
	if rec != nil {
		t.Errorf("FindByURL() = %v, want nil on miss", rec)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Insert(ctx, testRecord("a", "https://example.com", time.Now())); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByID(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	got.URL = "https://tampered.example"

	again, err := repo.FindByID(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if again.URL != "https://example.com" {
		t.Error("mutating a returned record must not affect the stored one")
	}
}
