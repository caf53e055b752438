package pagedesk

import (
	"errors"
	"testing"
	"time"

	"github.com/eringen/pagedesk/editor"
	"github.com/eringen/pagedesk/page"
)

var _ editor.MenuRefresher = (*MenuCache)(nil)

type fakeLister struct {
	pages []page.Summary
	err   error
}

func (f *fakeLister) FindPages() ([]page.Summary, error) { return f.pages, f.err }

func TestMenuCacheServesFromCache(t *testing.T) {
	store := &fakeLister{pages: []page.Summary{{ID: "1", Title: "one", Type: page.TypePost}}}
	c := NewMenuCache(store, time.Minute)

	if _, err := c.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	store.pages = append(store.pages, page.Summary{ID: "2", Title: "two", Type: page.TypeImage})
	pages, _ := c.Pages()
	if len(pages) != 1 {
		t.Errorf("expected cached menu of 1 page, got %d", len(pages))
	}
	if c.loads != 1 {
		t.Errorf("expected 1 load, got %d", c.loads)
	}

	c.Refresh()
	pages, _ = c.Pages()
	if len(pages) != 2 {
		t.Errorf("expected refreshed menu of 2 pages, got %d", len(pages))
	}
}

func TestMenuCacheExpires(t *testing.T) {
	store := &fakeLister{}
	c := NewMenuCache(store, 10*time.Millisecond)
	pages, err := c.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if pages == nil {
		t.Fatal("empty menu should be a non-nil slice")
	}
	time.Sleep(20 * time.Millisecond)
	c.Pages()
	if c.loads != 2 {
		t.Errorf("expected reload after ttl, loads = %d", c.loads)
	}
}

func TestMenuCacheError(t *testing.T) {
	c := NewMenuCache(&fakeLister{err: errors.New("boom")}, time.Minute)
	if _, err := c.Pages(); err == nil {
		t.Fatal("expected error")
	}
}
