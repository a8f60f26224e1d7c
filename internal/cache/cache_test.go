package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shivakharbanda/cm-front/internal/api"
)

func testDB(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePosts() []Post {
	now := time.Now()
	return []Post{
		{ID: "p1", Caption: "Launch day! link in bio", MediaType: "IMAGE", Permalink: "https://ig/p1", PostedAt: now.Add(-1 * time.Hour), FetchedAt: now},
		{ID: "p2", Caption: "Behind the scenes", MediaType: "VIDEO", Permalink: "https://ig/p2", PostedAt: now.Add(-2 * time.Hour), FetchedAt: now},
		{ID: "p3", Caption: "Giveaway rules", MediaType: "IMAGE", Permalink: "https://ig/p3", PostedAt: now.Add(-48 * time.Hour), FetchedAt: now},
	}
}

func TestUpsertAndGet(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetPosts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(got))
	}
	// Newest first
	if got[0].ID != "p1" {
		t.Errorf("expected newest first, got %s", got[0].ID)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	posts := samplePosts()
	if err := db.UpsertPosts(posts); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	posts[0].Caption = "Launch day! (edited)"
	if err := db.UpsertPosts(posts[:1]); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := db.GetPosts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 posts after upsert, got %d", len(got))
	}
	if got[0].Caption != "Launch day! (edited)" {
		t.Errorf("expected updated caption, got %q", got[0].Caption)
	}
}

func TestQuerySearch(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetPosts(QueryOpts{Search: "giveaway"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p3" {
		t.Errorf("expected only p3, got %v", got)
	}
}

func TestQueryMediaType(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPosts(samplePosts()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetPosts(QueryOpts{MediaType: "IMAGE"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 image posts, got %d", len(got))
	}
}

func TestNeedsRefresh(t *testing.T) {
	db := testDB(t)

	if !db.NeedsRefresh(1 * time.Hour) {
		t.Error("expected NeedsRefresh=true when no last_refresh set")
	}

	if err := db.SetLastRefresh(); err != nil {
		t.Fatalf("SetLastRefresh: %v", err)
	}
	if db.NeedsRefresh(1 * time.Hour) {
		t.Error("expected NeedsRefresh=false right after SetLastRefresh")
	}
	if !db.NeedsRefresh(0) {
		t.Error("expected NeedsRefresh=true with zero interval")
	}
}

func TestPrune(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	posts := []Post{
		{ID: "old", MediaType: "IMAGE", Permalink: "https://ig/old", PostedAt: now, FetchedAt: now.Add(-30 * 24 * time.Hour)},
		{ID: "new", MediaType: "IMAGE", Permalink: "https://ig/new", PostedAt: now, FetchedAt: now},
	}
	if err := db.UpsertPosts(posts); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err := db.Prune(7 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	got, err := db.GetPosts(QueryOpts{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("expected only the fresh post to remain, got %v", got)
	}
}

func TestFromAPI(t *testing.T) {
	fetched := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	in := []api.InstagramPost{
		{ID: "p1", Caption: "hello", MediaType: "IMAGE", Permalink: "https://ig/p1", Timestamp: "2026-07-30T10:00:00Z"},
		{ID: "p2", MediaType: "VIDEO", Permalink: "https://ig/p2", Timestamp: "not-a-time"},
	}

	out := FromAPI(in, fetched)
	if len(out) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(out))
	}
	if !out[0].PostedAt.Equal(time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("parsed timestamp wrong: %v", out[0].PostedAt)
	}
	if !out[1].PostedAt.Equal(fetched) {
		t.Errorf("unparseable timestamp should fall back to fetch time, got %v", out[1].PostedAt)
	}
}
