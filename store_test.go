package pagedesk

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/eringen/pagedesk/editor"
	"github.com/eringen/pagedesk/page"
)

var _ editor.Store = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test_pages.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSetAndFindPage(t *testing.T) {
	s := setupTestStore(t)

	pages := []page.Page{
		{ID: "1", Type: page.TypePost, Title: "Hello", Content: "body", Created: "2024-01-15T10:00:00Z"},
		{ID: "2", Type: page.TypeImage, Title: "Cat", Src: "/cat.jpg"},
		{ID: "3", Type: page.TypeVideo, Title: "Clip", Src: "/c.mp4", ContentType: "video/mp4"},
		{ID: "4", Type: page.TypeSlideshow, Title: "Trip", Images: []page.Slide{{Title: "a", Src: "/a.jpg"}, {Title: "b", Src: "/b.jpg"}}},
		{ID: "5", Type: page.TypeQuiz, Title: "Q", Description: "d", Questions: []page.Question{
			{Text: "2+2?", CorrectIndex: 1, Options: []string{"3", "4"}},
		}},
	}
	for _, p := range pages {
		if err := s.SetPage(p); err != nil {
			t.Fatalf("SetPage(%s) failed: %v", p.ID, err)
		}
	}

	for _, want := range pages {
		got, err := s.FindPage(want.ID)
		if err != nil {
			t.Fatalf("FindPage(%s) failed: %v", want.ID, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindPage(%s) = %+v, want %+v", want.ID, got, want)
		}
	}
}

func TestFindPageNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.FindPage("missing")
	if !errors.Is(err, page.ErrNotFound) {
		t.Errorf("expected page.ErrNotFound, got %v", err)
	}
}

func TestSetPageReplacesAndKeepsOrder(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []page.Page{
		{ID: "a", Type: page.TypeImage, Title: "first", Src: "/1.jpg"},
		{ID: "b", Type: page.TypeImage, Title: "second", Src: "/2.jpg"},
	} {
		if err := s.SetPage(p); err != nil {
			t.Fatalf("SetPage failed: %v", err)
		}
	}
	if err := s.SetPage(page.Page{ID: "a", Type: page.TypeImage, Title: "renamed", Src: "/1.jpg"}); err != nil {
		t.Fatalf("SetPage failed: %v", err)
	}

	got, err := s.FindPages()
	if err != nil {
		t.Fatalf("FindPages failed: %v", err)
	}
	want := []page.Summary{
		{ID: "a", Title: "renamed", Type: page.TypeImage},
		{ID: "b", Title: "second", Type: page.TypeImage},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPages = %+v, want %+v", got, want)
	}
}

func TestFindPagesEmpty(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.FindPages()
	if err != nil {
		t.Fatalf("FindPages failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFindPagesByType(t *testing.T) {
	s := setupTestStore(t)

	s.SetPage(page.Page{ID: "1", Type: page.TypePost, Title: "p1", Content: "c", Created: "2024-01-01T00:00:00Z"})
	s.SetPage(page.Page{ID: "2", Type: page.TypeImage, Title: "i", Src: "/i.jpg"})
	s.SetPage(page.Page{ID: "3", Type: page.TypePost, Title: "p2", Content: "c", Created: "2024-01-02T00:00:00Z"})

	posts, err := s.FindPagesByType(page.TypePost)
	if err != nil {
		t.Fatalf("FindPagesByType failed: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != "1" || posts[1].ID != "3" {
		t.Errorf("unexpected posts: %+v", posts)
	}
}

func TestRemovePage(t *testing.T) {
	s := setupTestStore(t)

	s.SetPage(page.Page{ID: "1", Type: page.TypeImage, Title: "i", Src: "/i.jpg"})
	if err := s.RemovePage("1"); err != nil {
		t.Fatalf("RemovePage failed: %v", err)
	}
	if _, err := s.FindPage("1"); !errors.Is(err, page.ErrNotFound) {
		t.Errorf("page should be gone, got %v", err)
	}
	if err := s.RemovePage("1"); err != nil {
		t.Errorf("removing a missing page should not fail: %v", err)
	}
}

func TestImages(t *testing.T) {
	s := setupTestStore(t)

	older := Image{Filename: "a.jpg", OriginalName: "A.png", Width: 10, Height: 20, Size: 300, UploadedAt: "2024-01-01T00:00:00Z"}
	newer := Image{Filename: "b.jpg", OriginalName: "B.png", Width: 30, Height: 40, Size: 500, UploadedAt: "2024-02-01T00:00:00Z"}
	for _, img := range []Image{older, newer} {
		if err := s.SaveImage(img); err != nil {
			t.Fatalf("SaveImage failed: %v", err)
		}
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if !reflect.DeepEqual(images, []Image{newer, older}) {
		t.Errorf("ListImages = %+v", images)
	}

	ok, err := s.ImageExists("a.jpg")
	if err != nil || !ok {
		t.Errorf("ImageExists(a.jpg) = %v, %v", ok, err)
	}

	if err := s.DeleteImage("a.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	ok, _ = s.ImageExists("a.jpg")
	if ok {
		t.Error("a.jpg should be deleted")
	}
	if got := newer.URL(); got != "/public/uploads/b.jpg" {
		t.Errorf("URL() = %q", got)
	}
}
