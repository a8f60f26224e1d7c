// Package pagelist keeps the ordered link/card collection of a bio page in
// sync with the server: reorders apply locally first and roll back by
// refetching, everything else confirms with the server before touching local
// state.
package pagelist

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shivakharbanda/cm-front/internal/api"
)

// Backend is the slice of the API client the controller needs. *api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	BioPages(ctx context.Context) ([]api.BioPage, error)
	CreateBioPage(ctx context.Context, in api.BioPageCreate) (*api.BioPage, error)
	PageItems(ctx context.Context, pageID string) ([]api.PageItem, error)
	ReorderPageItems(ctx context.Context, pageID string, items []api.ReorderItem) error
	CreateBioLink(ctx context.Context, pageID string, in api.BioLinkCreate) (*api.BioLink, error)
	CreateBioCard(ctx context.Context, pageID string, in api.BioCardCreate) (*api.BioCard, error)
	UpdateBioLink(ctx context.Context, pageID, linkID string, in api.BioLinkUpdate) (*api.BioLink, error)
	UpdateBioCard(ctx context.Context, pageID, cardID string, in api.BioCardUpdate) (*api.BioCard, error)
	DeleteBioLink(ctx context.Context, pageID, linkID string) error
	DeleteBioCard(ctx context.Context, pageID, cardID string) error
	PublishBioPage(ctx context.Context, id string) (*api.BioPage, error)
	UnpublishBioPage(ctx context.Context, id string) (*api.BioPage, error)
}

// Controller owns one page's item list. Safe for concurrent use from
// bubbletea command goroutines.
type Controller struct {
	backend Backend

	mu    sync.Mutex
	page  *api.BioPage
	items []api.PageItem
}

func New(backend Backend) *Controller {
	return &Controller{backend: backend}
}

// Load fetches the authoritative page and item list. A user has at most one
// bio page; when none exists yet one is created with a generated slug.
func (c *Controller) Load(ctx context.Context) error {
	pages, err := c.backend.BioPages(ctx)
	if err != nil {
		return err
	}

	var page *api.BioPage
	if len(pages) > 0 {
		page = &pages[0]
	} else {
		page, err = c.backend.CreateBioPage(ctx, api.BioPageCreate{})
		if err != nil {
			return err
		}
	}

	items, err := c.backend.PageItems(ctx, page.ID)
	if err != nil {
		return err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	c.mu.Lock()
	c.page = page
	c.items = items
	c.mu.Unlock()
	return nil
}

// Page returns the held page, nil before Load.
func (c *Controller) Page() *api.BioPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Items returns a copy of the current ordered list.
func (c *Controller) Items() []api.PageItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.PageItem, len(c.items))
	copy(out, c.items)
	return out
}

// Reorder moves the item at oldIndex to newIndex, reassigns dense positions,
// applies the result locally, then persists the full snapshot. On
// persistence failure the optimistic state is discarded and the
// authoritative list refetched; the persistence error is returned either
// way. Equal or out-of-range indices are a no-op.
func (c *Controller) Reorder(ctx context.Context, oldIndex, newIndex int) error {
	c.mu.Lock()
	n := len(c.items)
	if oldIndex == newIndex || oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		c.mu.Unlock()
		return nil
	}

	next := make([]api.PageItem, 0, n)
	next = append(next, c.items[:oldIndex]...)
	next = append(next, c.items[oldIndex+1:]...)
	moved := c.items[oldIndex]
	next = append(next[:newIndex], append([]api.PageItem{moved}, next[newIndex:]...)...)
	for i := range next {
		next[i].Position = i
	}

	snapshot := make([]api.ReorderItem, n)
	for i, it := range next {
		snapshot[i] = api.ReorderItem{Type: it.Type, ItemID: it.ItemID, Position: i}
	}

	// Optimistic apply before the round trip.
	c.items = next
	pageID := c.page.ID
	c.mu.Unlock()

	if err := c.backend.ReorderPageItems(ctx, pageID, snapshot); err != nil {
		// Reconcile by refetching rather than patching locally.
		if refetchErr := c.Load(ctx); refetchErr != nil {
			return fmt.Errorf("reorder failed (%v) and refetch failed: %w", err, refetchErr)
		}
		return err
	}
	return nil
}

// ToggleActive flips one item's active flag server-side first; local state
// is patched only after confirmation, and only for the targeted item.
func (c *Controller) ToggleActive(ctx context.Context, kind api.ItemType, id string, active bool) error {
	pageID, err := c.pageID()
	if err != nil {
		return err
	}

	switch kind {
	case api.ItemLink:
		_, err = c.backend.UpdateBioLink(ctx, pageID, id, api.BioLinkUpdate{IsActive: &active})
	case api.ItemCard:
		_, err = c.backend.UpdateBioCard(ctx, pageID, id, api.BioCardUpdate{IsActive: &active})
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Type == kind && c.items[i].ItemID == id {
			c.items[i].SetActive(active)
			break
		}
	}
	return nil
}

// Remove deletes one item server-side first; it is filtered out of local
// state only after confirmation.
func (c *Controller) Remove(ctx context.Context, kind api.ItemType, id string) error {
	pageID, err := c.pageID()
	if err != nil {
		return err
	}

	switch kind {
	case api.ItemLink:
		err = c.backend.DeleteBioLink(ctx, pageID, id)
	case api.ItemCard:
		err = c.backend.DeleteBioCard(ctx, pageID, id)
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if !(it.Type == kind && it.ItemID == id) {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.renumberLocked()
	return nil
}

// CreateLink creates a link server-side and appends it to the local list
// only after confirmation.
func (c *Controller) CreateLink(ctx context.Context, in api.BioLinkCreate) (*api.BioLink, error) {
	pageID, err := c.pageID()
	if err != nil {
		return nil, err
	}
	link, err := c.backend.CreateBioLink(ctx, pageID, in)
	if err != nil {
		return nil, err
	}
	c.Add(api.PageItem{Type: api.ItemLink, ItemID: link.ID, Link: link})
	return link, nil
}

// CreateCard creates a lead-capture card server-side and appends it locally
// after confirmation.
func (c *Controller) CreateCard(ctx context.Context, in api.BioCardCreate) (*api.BioCard, error) {
	pageID, err := c.pageID()
	if err != nil {
		return nil, err
	}
	card, err := c.backend.CreateBioCard(ctx, pageID, in)
	if err != nil {
		return nil, err
	}
	c.Add(api.PageItem{Type: api.ItemCard, ItemID: card.ID, Card: card})
	return card, nil
}

// UpdateLink persists a link edit and swaps the confirmed result into the
// local list.
func (c *Controller) UpdateLink(ctx context.Context, id string, in api.BioLinkUpdate) (*api.BioLink, error) {
	pageID, err := c.pageID()
	if err != nil {
		return nil, err
	}
	link, err := c.backend.UpdateBioLink(ctx, pageID, id, in)
	if err != nil {
		return nil, err
	}
	c.Replace(api.PageItem{Type: api.ItemLink, ItemID: link.ID, Link: link})
	return link, nil
}

// UpdateCard persists a card edit and swaps the confirmed result into the
// local list.
func (c *Controller) UpdateCard(ctx context.Context, id string, in api.BioCardUpdate) (*api.BioCard, error) {
	pageID, err := c.pageID()
	if err != nil {
		return nil, err
	}
	card, err := c.backend.UpdateBioCard(ctx, pageID, id, in)
	if err != nil {
		return nil, err
	}
	c.Replace(api.PageItem{Type: api.ItemCard, ItemID: card.ID, Card: card})
	return card, nil
}

// Add appends a freshly created item; call after a confirmed create.
func (c *Controller) Add(item api.PageItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item.Position = len(c.items)
	c.items = append(c.items, item)
}

// Replace swaps in the updated item matching the same (kind, id); call after
// a confirmed update. Position is kept from the existing slot.
func (c *Controller) Replace(item api.PageItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Type == item.Type && c.items[i].ItemID == item.ItemID {
			item.Position = c.items[i].Position
			c.items[i] = item
			return
		}
	}
}

// TogglePublish flips the page's published state via a server round trip.
func (c *Controller) TogglePublish(ctx context.Context) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	if page == nil {
		return fmt.Errorf("no bio page loaded")
	}

	var (
		updated *api.BioPage
		err     error
	)
	if page.IsPublished {
		updated, err = c.backend.UnpublishBioPage(ctx, page.ID)
	} else {
		updated, err = c.backend.PublishBioPage(ctx, page.ID)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.page = updated
	c.mu.Unlock()
	return nil
}

func (c *Controller) pageID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == nil {
		return "", fmt.Errorf("no bio page loaded")
	}
	return c.page.ID, nil
}

// renumberLocked keeps positions a dense 0..N-1 permutation matching array
// order. Caller holds mu.
func (c *Controller) renumberLocked() {
	for i := range c.items {
		c.items[i].Position = i
	}
}
