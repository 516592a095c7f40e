// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/people-engine/pkg/types"
)

func testStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := NewStore(types.CacheConfig{
		Path: filepath.Join(t.TempDir(), "cache.db"),
		TTL:  ttl,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult() types.SearchResult {
	return types.SearchResult{
		Profiles: []types.Profile{{
			Name:    "Jane Doe",
			Company: "Acme",
			Skills:  types.Skills{Visible: []string{"Go"}},
		}},
		Count: 1,
	}
}

func TestGetMissOnEmptyStore(t *testing.T) {
	store := testStore(t, time.Hour)
	_, err := store.Get(context.Background(), Key("Jane Doe", "Acme", 10, false))
	if !errors.Is(err, ErrMiss) {
		t.Errorf("err = %v, want ErrMiss", err)
	}
}

func TestPutThenGet(t *testing.T) {
	store := testStore(t, time.Hour)
	ctx := context.Background()
	key := Key("Jane Doe", "Acme", 10, false)

	if err := store.Put(ctx, key, sampleResult()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Count != 1 || got.Profiles[0].Name != "Jane Doe" {
		t.Errorf("got = %+v", got)
	}
}

func TestPutReplacesExistingEntry(t *testing.T) {
	store := testStore(t, time.Hour)
	ctx := context.Background()
	key := Key("Jane Doe", "", 10, false)

	if err := store.Put(ctx, key, sampleResult()); err != nil {
		t.Fatal(err)
	}
	updated := sampleResult()
	updated.Profiles[0].Title = "CTO"
	if err := store.Put(ctx, key, updated); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Profiles[0].Title != "CTO" {
		t.Errorf("Title = %q, want updated entry to win", got.Profiles[0].Title)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 {
		t.Errorf("Entries = %d, want 1 after replace", stats.Entries)
	}
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	store := testStore(t, time.Hour)
	ctx := context.Background()
	key := Key("Jane Doe", "Acme", 10, true)

	if err := store.Put(ctx, key, sampleResult()); err != nil {
		t.Fatal(err)
	}

	// Advance the clock past the TTL.
	store.timeNow = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrMiss) {
		t.Errorf("err = %v, want ErrMiss after expiry", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Expired != 1 {
		t.Errorf("Expired = %d, want 1", stats.Expired)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	store := testStore(t, 0)
	ctx := context.Background()
	key := Key("Jane Doe", "", 10, false)

	if err := store.Put(ctx, key, sampleResult()); err != nil {
		t.Fatal(err)
	}
	store.timeNow = func() time.Time { return time.Now().Add(240 * time.Hour) }

	if _, err := store.Get(ctx, key); err != nil {
		t.Errorf("Get with zero TTL: %v", err)
	}
}

func TestKeyDistinguishesParameters(t *testing.T) {
	base := Key("Jane Doe", "Acme", 10, false)
	for _, other := range []string{
		Key("Jane Doe", "Acme", 10, true),
		Key("Jane Doe", "Acme", 5, false),
		Key("Jane Doe", "", 10, false),
		Key("jane doe", "Acme", 10, false),
	} {
		if other == base {
			t.Errorf("key collision: %q", other)
		}
	}
}

func TestPurge(t *testing.T) {
	store := testStore(t, time.Hour)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if err := store.Put(ctx, Key(name, "", 10, false), sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 3 {
		t.Errorf("purged = %d, want 3", n)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Errorf("Entries = %d, want 0 after purge", stats.Entries)
	}
}
