package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shivakharbanda/cm-front/internal/api"
	"github.com/shivakharbanda/cm-front/internal/cache"
	"github.com/shivakharbanda/cm-front/internal/config"
)

const (
	postsRefreshInterval = time.Hour
	postsRetention       = 30 * 24 * time.Hour
	postsMaxPages        = 5
)

var (
	flagPostsRefresh bool
	flagPostsSearch  string
	flagPostsMedia   string
	flagPostsLimit   int
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the connected account's Instagram posts",
	Long: `List recent posts from the connected Instagram account. Posts are cached
locally so repeated lookups (for picking an automation target) stay fast;
the cache refreshes after an hour or on --refresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, log, err := newClient()
		if err != nil {
			return err
		}

		db, err := cache.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		if flagPostsRefresh || db.NeedsRefresh(postsRefreshInterval) {
			fmt.Println("Fetching posts...")
			if err := refreshPosts(cmd.Context(), client, db, log); err != nil {
				return err
			}
		}

		posts, err := db.GetPosts(cache.QueryOpts{
			Search:    flagPostsSearch,
			MediaType: flagPostsMedia,
			Limit:     flagPostsLimit,
		})
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}
		if len(posts) == 0 {
			fmt.Println("No posts found.")
			return nil
		}

		for _, p := range posts {
			caption := p.Caption
			if caption == "" {
				caption = "(no caption)"
			}
			fmt.Printf("%s  %-8s  %s\n    %s\n", p.PostedAt.Format("2006-01-02"), p.MediaType, truncateCaption(caption, 60), p.Permalink)
		}
		return nil
	},
}

// truncateCaption shortens by runes, not bytes; captions are emoji-heavy and
// a byte slice could split a multi-byte character.
func truncateCaption(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func refreshPosts(ctx context.Context, client *api.Client, db *cache.Cache, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	fetchedAt := time.Now()
	cursor := ""
	for page := 0; page < postsMaxPages; page++ {
		resp, err := client.InstagramPosts(ctx, cursor)
		if err != nil {
			return fmt.Errorf("fetching posts: %w", err)
		}
		if err := db.UpsertPosts(cache.FromAPI(resp.Posts, fetchedAt)); err != nil {
			return fmt.Errorf("caching posts: %w", err)
		}
		if resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	if err := db.SetLastRefresh(); err != nil {
		log.Warn().Err(err).Msg("recording refresh time")
	}
	// Drop rows the account no longer returns.
	if _, err := db.Prune(postsRetention); err != nil {
		log.Warn().Err(err).Msg("pruning post cache")
	}
	return nil
}

func init() {
	postsCmd.Flags().BoolVar(&flagPostsRefresh, "refresh", false, "force a refresh before listing")
	postsCmd.Flags().StringVar(&flagPostsSearch, "search", "", "filter by caption substring")
	postsCmd.Flags().StringVar(&flagPostsMedia, "media-type", "", "filter by media type (IMAGE, VIDEO, CAROUSEL_ALBUM)")
	postsCmd.Flags().IntVar(&flagPostsLimit, "limit", 25, "maximum posts to show")

	rootCmd.AddCommand(postsCmd)
}
