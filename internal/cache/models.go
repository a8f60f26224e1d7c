package cache

import (
	"time"

	"github.com/shivakharbanda/cm-front/internal/api"
)

type Post struct {
	ID           string
	Caption      string
	MediaType    string
	MediaURL     string
	ThumbnailURL string
	Permalink    string
	PostedAt     time.Time
	FetchedAt    time.Time
}

type QueryOpts struct {
	Search    string
	MediaType string
	Limit     int
}

// FromAPI converts API posts into cache rows. Timestamps that fail to parse
// fall back to the fetch time so the row still sorts somewhere sensible.
func FromAPI(posts []api.InstagramPost, fetchedAt time.Time) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		postedAt := fetchedAt
		if t, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
			postedAt = t
		}
		out = append(out, Post{
			ID:           p.ID,
			Caption:      p.Caption,
			MediaType:    p.MediaType,
			MediaURL:     p.MediaURL,
			ThumbnailURL: p.ThumbnailURL,
			Permalink:    p.Permalink,
			PostedAt:     postedAt,
			FetchedAt:    fetchedAt,
		})
	}
	return out
}
