package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pagedesk/page"
)

type memStore struct {
	pages  map[string]page.Page
	order  []string
	writes int
	fail   error
}

func newMemStore(pages ...page.Page) *memStore {
	s := &memStore{pages: make(map[string]page.Page)}
	for _, p := range pages {
		s.pages[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *memStore) SetPage(p page.Page) error {
	if s.fail != nil {
		return s.fail
	}
	s.writes++
	if _, ok := s.pages[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.pages[p.ID] = p
	return nil
}

func (s *memStore) FindPage(id string) (page.Page, error) {
	p, ok := s.pages[id]
	if !ok {
		return page.Page{}, page.ErrNotFound
	}
	return p, nil
}

func (s *memStore) FindPages() ([]page.Summary, error) {
	out := make([]page.Summary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.pages[id].Summary())
	}
	return out, nil
}

func (s *memStore) RemovePage(id string) error {
	if s.fail != nil {
		return s.fail
	}
	delete(s.pages, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type counter struct{ n int }

func (c *counter) Refresh() { c.n++ }

func newTestController(t *testing.T, store *memStore) (*Controller, *counter) {
	t.Helper()
	menu := &counter{}
	c := NewController(store, SessionFunc(func() bool { return true }), menu, WithRegistry(testRegistry()))
	_, err := c.Start()
	require.NoError(t, err)
	return c, menu
}

func TestStartDeniedWithoutLogin(t *testing.T) {
	c := NewController(newMemStore(), SessionFunc(func() bool { return false }), nil)
	v, err := c.Start()
	require.NoError(t, err)
	assert.True(t, v.Denied)
	assert.Equal(t, MsgAccessDenied, v.Message)
	assert.Equal(t, StateUninitialized, c.State())
	assert.Nil(t, c.Editor())
}

func TestTransitionsRequireStart(t *testing.T) {
	for _, loggedIn := range []bool{false, true} {
		store := newMemStore(page.Page{ID: "7", Type: page.TypePost, Title: "T", Content: "c"})
		c := NewController(store, SessionFunc(func() bool { return loggedIn }), nil, WithRegistry(testRegistry()))

		assert.ErrorIs(t, c.ChangeType(page.TypeQuiz), ErrNotStarted)
		assert.ErrorIs(t, c.SelectCreateNew(), ErrNotStarted)
		assert.ErrorIs(t, c.SelectExistingPage("7"), ErrNotStarted)
		assert.Equal(t, StateUninitialized, c.State())
		assert.Nil(t, c.Editor())
	}
}

func TestTransitionsStayBlockedAfterDeniedStart(t *testing.T) {
	c := NewController(newMemStore(), SessionFunc(func() bool { return false }), nil, WithRegistry(testRegistry()))
	v, err := c.Start()
	require.NoError(t, err)
	require.True(t, v.Denied)

	assert.ErrorIs(t, c.ChangeType(page.TypeVideo), ErrNotStarted)
	assert.ErrorIs(t, c.SelectCreateNew(), ErrNotStarted)
	assert.Equal(t, StateUninitialized, c.State())
}

func TestStartEntersCreatingPost(t *testing.T) {
	c, _ := newTestController(t, newMemStore())
	assert.Equal(t, StateCreating, c.State())
	assert.Equal(t, page.TypePost, c.Editor().Type())

	v, err := c.View()
	require.NoError(t, err)
	assert.True(t, v.CanChangeType())
	assert.False(t, v.CanDelete())
	assert.Equal(t, "Post", v.Form.Heading)
}

func TestStartKeepsStateOnLaterCalls(t *testing.T) {
	c, _ := newTestController(t, newMemStore())
	require.NoError(t, c.ChangeType(page.TypeVideo))
	_, err := c.Start()
	require.NoError(t, err)
	assert.Equal(t, page.TypeVideo, c.Editor().Type())
}

func TestSaveAndDeleteWithoutEditor(t *testing.T) {
	c := NewController(newMemStore(), SessionFunc(func() bool { return true }), nil)
	_, err := c.Save()
	assert.ErrorIs(t, err, ErrNoActiveEditor)
	assert.ErrorIs(t, c.DeletePage(), ErrNoActiveEditor)
	assert.ErrorIs(t, c.SetField("title", "x"), ErrNoActiveEditor)
}

func TestSaveValidWritesOnceAndRefreshesOnce(t *testing.T) {
	store := newMemStore()
	c, menu := newTestController(t, store)
	require.NoError(t, c.ChangeType(page.TypeImage))
	require.NoError(t, c.Bind(map[string]string{"title": "Cat", "src": "/cat.jpg", "_csrf": "tok"}))

	ok, err := c.Save()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, 1, menu.n)

	saved, err := store.FindPage("id1")
	require.NoError(t, err)
	assert.Equal(t, page.Page{ID: "id1", Type: page.TypeImage, Title: "Cat", Src: "/cat.jpg"}, saved)

	assert.Equal(t, StateCreating, c.State())
	assert.Equal(t, page.TypePost, c.Editor().Type())
	v, err := c.View()
	require.NoError(t, err)
	assert.Equal(t, MsgSaved, v.Message)
	assert.Equal(t, []page.Summary{{ID: "id1", Title: "Cat", Type: page.TypeImage}}, v.Pages)
}

func TestSaveInvalidKeepsStateAndReportsErrors(t *testing.T) {
	store := newMemStore()
	c, menu := newTestController(t, store)
	require.NoError(t, c.SetField("title", "only title"))

	ok, err := c.Save()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.writes)
	assert.Equal(t, 0, menu.n)
	assert.Equal(t, StateCreating, c.State())

	v, err := c.View()
	require.NoError(t, err)
	f, _ := v.Form.Field("content")
	assert.Equal(t, "Content is required", f.Error)
	f, _ = v.Form.Field("title")
	assert.Equal(t, "only title", f.Value)

	// fixing the field clears the previous errors on the next save
	require.NoError(t, c.SetField("content", "body"))
	ok, err = c.Save()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.Errors().Valid())
}

func TestSaveStoreFailurePropagates(t *testing.T) {
	store := newMemStore()
	c, menu := newTestController(t, store)
	require.NoError(t, c.Bind(map[string]string{"title": "t", "content": "c"}))
	store.fail = errors.New("disk full")

	ok, err := c.Save()
	assert.False(t, ok)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 0, menu.n)
}

func TestSelectExistingPageLoadsEditor(t *testing.T) {
	store := newMemStore(page.Page{ID: "7", Type: page.TypeVideo, Title: "Clip", Src: "/c.mp4", ContentType: "video/mp4"})
	c, _ := newTestController(t, store)

	require.NoError(t, c.SelectExistingPage("7"))
	assert.Equal(t, StateEditing, c.State())
	assert.Equal(t, "7", c.PageID())
	assert.Equal(t, page.TypeVideo, c.Editor().Type())

	v, err := c.View()
	require.NoError(t, err)
	assert.True(t, v.CanDelete())
	assert.False(t, v.CanChangeType())
	f, _ := v.Form.Field("contentType")
	assert.Equal(t, "video/mp4", f.Value)

	assert.ErrorIs(t, c.ChangeType(page.TypePost), ErrTypeLocked)
	assert.Equal(t, page.TypeVideo, c.Editor().Type())
}

func TestSelectExistingPageNotFound(t *testing.T) {
	c, _ := newTestController(t, newMemStore())
	err := c.SelectExistingPage("nope")
	assert.ErrorIs(t, err, page.ErrNotFound)
	assert.Equal(t, StateCreating, c.State())
}

func TestSaveExistingPageReusesID(t *testing.T) {
	store := newMemStore(page.Page{ID: "7", Type: page.TypeImage, Title: "Old", Src: "/o.jpg"})
	c, _ := newTestController(t, store)
	require.NoError(t, c.SelectExistingPage("7"))
	require.NoError(t, c.SetField("title", "New"))

	ok, err := c.Save()
	require.NoError(t, err)
	require.True(t, ok)
	pages, _ := store.FindPages()
	require.Len(t, pages, 1)
	assert.Equal(t, "New", pages[0].Title)
	assert.Equal(t, "7", pages[0].ID)
}

func TestDeleteCurrentPage(t *testing.T) {
	store := newMemStore(
		page.Page{ID: "1", Type: page.TypePost, Title: "keep", Content: "c"},
		page.Page{ID: "2", Type: page.TypeSlideshow, Title: "drop"},
	)
	c, menu := newTestController(t, store)
	require.NoError(t, c.SelectExistingPage("2"))

	require.NoError(t, c.DeletePage())
	assert.Equal(t, 1, menu.n)
	assert.Equal(t, StateCreating, c.State())
	assert.Equal(t, page.TypePost, c.Editor().Type())
	assert.Equal(t, "", c.PageID())

	v, err := c.View()
	require.NoError(t, err)
	assert.Equal(t, MsgDeleted, v.Message)
	for _, fld := range v.Form.Fields {
		assert.Empty(t, fld.Value, fld.Key)
	}
	for _, s := range v.Pages {
		assert.NotEqual(t, "2", s.ID)
	}
	assert.Len(t, v.Pages, 1)
}

func TestDeleteInCreateMode(t *testing.T) {
	c, menu := newTestController(t, newMemStore())
	assert.ErrorIs(t, c.DeletePage(), ErrNotEditing)
	assert.Equal(t, 0, menu.n)
}

func TestChangeTypeDiscardsEnteredValues(t *testing.T) {
	c, _ := newTestController(t, newMemStore())
	require.NoError(t, c.Bind(map[string]string{"title": "draft", "content": "words"}))
	require.NoError(t, c.ChangeType(page.TypeImage))
	require.NoError(t, c.SetField("title", "picture"))
	require.NoError(t, c.ChangeType(page.TypePost))

	v, err := c.View()
	require.NoError(t, err)
	for _, fld := range v.Form.Fields {
		assert.Empty(t, fld.Value, fld.Key)
	}
}

func TestChangeTypeUnknown(t *testing.T) {
	c, _ := newTestController(t, newMemStore())
	assert.ErrorIs(t, c.ChangeType("hero"), ErrUnknownType)
	assert.Equal(t, page.TypePost, c.Editor().Type())
}

func TestSelectCreateNewAfterEditing(t *testing.T) {
	store := newMemStore(page.Page{ID: "1", Type: page.TypePost, Title: "t", Content: "c"})
	c, _ := newTestController(t, store)
	require.NoError(t, c.SelectExistingPage("1"))
	require.NoError(t, c.SelectCreateNew())

	assert.Equal(t, StateCreating, c.State())
	_, bound := c.Editor().Bound()
	assert.False(t, bound)
	v, _ := c.View()
	f, _ := v.Form.Field("title")
	assert.Empty(t, f.Value)
}

func TestRowOperationsThroughController(t *testing.T) {
	store := newMemStore()
	c, _ := newTestController(t, store)

	_, err := c.AddItem("slides", "")
	assert.ErrorIs(t, err, ErrNoCollections)

	require.NoError(t, c.ChangeType(page.TypeSlideshow))
	h, err := c.AddItem("slides", "")
	require.NoError(t, err)
	require.NoError(t, c.Bind(map[string]string{
		"title":                          "trip",
		"slides." + string(h) + ".title": "beach",
		"slides." + string(h) + ".src":   "/beach.jpg",
	}))
	ok, err := c.Save()
	require.NoError(t, err)
	require.True(t, ok)

	p, err := store.FindPage("id1")
	require.NoError(t, err)
	assert.Equal(t, []page.Slide{{Title: "beach", Src: "/beach.jpg"}}, p.Images)

	assert.ErrorIs(t, c.RemoveItem(h), ErrNoCollections)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "creating", StateCreating.String())
	assert.Equal(t, "State(9)", State(9).String())
}
