package editor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eringen/pagedesk/page"
	"github.com/eringen/pagedesk/validate"
)

var (
	// ErrNoActiveEditor is returned by Save and DeletePage before any editor
	// has been made active.
	ErrNoActiveEditor = errors.New("no active editor")
	// ErrTypeLocked is returned by ChangeType while an existing page is bound.
	ErrTypeLocked = errors.New("page type cannot change once a page exists")
	// ErrNotEditing is returned by DeletePage in create mode.
	ErrNotEditing = errors.New("no existing page selected")
	// ErrNoCollections is returned for row operations on editors without lists.
	ErrNoCollections = errors.New("editor has no collections")
	// ErrNotStarted is returned by selection and type changes before an
	// authenticated Start.
	ErrNotStarted = errors.New("workspace not started")
)

const (
	MsgSaved        = "Page saved!"
	MsgDeleted      = "Page deleted."
	MsgAccessDenied = "You must be logged in to view this page"
)

// Store is the persistence the controller writes pages to. SetPage upserts
// by id.
type Store interface {
	SetPage(p page.Page) error
	FindPage(id string) (page.Page, error)
	FindPages() ([]page.Summary, error)
	RemovePage(id string) error
}

// Session reports whether the author is authenticated.
type Session interface {
	IsLoggedIn() bool
}

// SessionFunc adapts a func to Session.
type SessionFunc func() bool

func (f SessionFunc) IsLoggedIn() bool { return f() }

// MenuRefresher is notified after every create, update and delete.
type MenuRefresher interface {
	Refresh()
}

// RefreshFunc adapts a func to MenuRefresher.
type RefreshFunc func()

func (f RefreshFunc) Refresh() { f() }

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateCreating
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// View is everything the presentation layer needs to draw the workspace.
type View struct {
	Denied  bool
	State   State
	Type    page.Type
	PageID  string
	Pages   []page.Summary
	Types   []page.Type
	Form    Form
	Message string
}

// CanChangeType reports whether the type selector is offered.
func (v View) CanChangeType() bool { return v.State == StateCreating }

// CanDelete reports whether the delete action is offered.
func (v View) CanDelete() bool { return v.State == StateEditing }

// Controller owns the single active editor of an authoring session and the
// page it is bound to. It is not safe for concurrent use.
type Controller struct {
	store    Store
	session  Session
	menu     MenuRefresher
	registry *Registry
	log      zerolog.Logger

	state   State
	pageID  string
	active  PageEditor
	errs    validate.Result
	message string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithRegistry sets the editor registry (default NewRegistry()).
func WithRegistry(r *Registry) ControllerOption {
	return func(c *Controller) { c.registry = r }
}

// WithLogger sets the controller logger (default disabled).
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// NewController returns a controller in StateUninitialized.
func NewController(store Store, session Session, menu MenuRefresher, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:   store,
		session: session,
		menu:    menu,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	return c
}

func (c *Controller) State() State { return c.state }

// Editor returns the active editor, or nil.
func (c *Controller) Editor() PageEditor { return c.active }

// PageID is the id of the bound page in StateEditing.
func (c *Controller) PageID() string { return c.pageID }

// Errors returns the field errors of the last failed save.
func (c *Controller) Errors() validate.Result { return c.errs }

// Start opens the workspace. Unauthenticated callers get a denied view and
// no state is entered. The first authenticated start creates a post.
func (c *Controller) Start() (View, error) {
	if c.session == nil || !c.session.IsLoggedIn() {
		c.log.Debug().Msg("workspace access denied")
		return View{Denied: true, Message: MsgAccessDenied}, nil
	}
	if c.state == StateUninitialized {
		if err := c.create(page.TypePost); err != nil {
			return View{}, err
		}
	}
	return c.View()
}

// SelectExistingPage loads page id into its editor for editing.
func (c *Controller) SelectExistingPage(id string) error {
	if c.state == StateUninitialized {
		return ErrNotStarted
	}
	p, err := c.store.FindPage(id)
	if err != nil {
		return fmt.Errorf("select page %s: %w", id, err)
	}
	ed, err := c.registry.Resolve(p.Type)
	if err != nil {
		return fmt.Errorf("select page %s: %w", id, err)
	}
	ed.Present()
	ed.Load(p)
	c.active = ed
	c.state = StateEditing
	c.pageID = p.ID
	c.errs = validate.Result{}
	c.message = ""
	c.log.Debug().Str("page_id", p.ID).Str("type", string(p.Type)).Msg("editing page")
	return nil
}

// SelectCreateNew starts a blank post.
func (c *Controller) SelectCreateNew() error {
	if c.state == StateUninitialized {
		return ErrNotStarted
	}
	return c.create(page.TypePost)
}

// ChangeType switches the blank form to t. Only legal while creating.
func (c *Controller) ChangeType(t page.Type) error {
	switch c.state {
	case StateUninitialized:
		return ErrNotStarted
	case StateCreating:
		return c.create(t)
	}
	return ErrTypeLocked
}

func (c *Controller) create(t page.Type) error {
	ed, err := c.registry.Resolve(t)
	if err != nil {
		return err
	}
	ed.Present()
	c.active = ed
	c.state = StateCreating
	c.pageID = ""
	c.errs = validate.Result{}
	c.message = ""
	c.log.Debug().Str("type", string(t)).Msg("creating page")
	return nil
}

// SetField forwards one input value to the active editor.
func (c *Controller) SetField(k, value string) error {
	if c.active == nil {
		return ErrNoActiveEditor
	}
	return c.active.SetField(k, value)
}

// Bind applies every value to the active editor, skipping keys the editor
// does not own.
func (c *Controller) Bind(values map[string]string) error {
	if c.active == nil {
		return ErrNoActiveEditor
	}
	for k, v := range values {
		if err := c.active.SetField(k, v); err != nil && !errors.Is(err, ErrUnknownField) {
			return err
		}
	}
	return nil
}

// AddItem appends a blank row to list of the active editor.
func (c *Controller) AddItem(list string, parent Handle) (Handle, error) {
	le, err := c.lists()
	if err != nil {
		return "", err
	}
	return le.AddItem(list, parent)
}

// RemoveItem removes row h from the active editor.
func (c *Controller) RemoveItem(h Handle) error {
	le, err := c.lists()
	if err != nil {
		return err
	}
	return le.RemoveItem(h)
}

func (c *Controller) lists() (ListEditor, error) {
	if c.active == nil {
		return nil, ErrNoActiveEditor
	}
	le, ok := c.active.(ListEditor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCollections, c.active.Type())
	}
	return le, nil
}

// Save validates the active editor and, when valid, persists the draft,
// refreshes the menu and returns to a blank post. An invalid draft reports
// false and keeps the state so the errors can be shown.
func (c *Controller) Save() (bool, error) {
	if c.active == nil {
		return false, ErrNoActiveEditor
	}
	c.errs = validate.Result{}
	c.message = ""
	res := c.active.Validate()
	if !res.Valid() {
		c.errs = res
		c.log.Debug().Int("errors", res.Len()).Str("type", string(c.active.Type())).Msg("page invalid")
		return false, nil
	}
	p := c.active.CollectDraft()
	if err := c.store.SetPage(p); err != nil {
		return false, fmt.Errorf("save page %s: %w", p.ID, err)
	}
	c.refresh()
	c.active.Reset()
	if err := c.create(page.TypePost); err != nil {
		return false, err
	}
	c.message = MsgSaved
	c.log.Info().Str("page_id", p.ID).Str("type", string(p.Type)).Msg("page saved")
	return true, nil
}

// DeletePage removes the bound page and returns to a blank post.
func (c *Controller) DeletePage() error {
	if c.active == nil {
		return ErrNoActiveEditor
	}
	if c.state != StateEditing {
		return ErrNotEditing
	}
	id := c.pageID
	if err := c.store.RemovePage(id); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	c.refresh()
	c.active.Reset()
	if err := c.create(page.TypePost); err != nil {
		return err
	}
	c.message = MsgDeleted
	c.log.Info().Str("page_id", id).Msg("page deleted")
	return nil
}

func (c *Controller) refresh() {
	if c.menu != nil {
		c.menu.Refresh()
	}
}

// View snapshots the workspace for rendering.
func (c *Controller) View() (View, error) {
	pages, err := c.store.FindPages()
	if err != nil {
		return View{}, fmt.Errorf("list pages: %w", err)
	}
	v := View{
		State:   c.state,
		PageID:  c.pageID,
		Pages:   pages,
		Types:   page.Types(),
		Message: c.message,
	}
	if c.active != nil {
		v.Type = c.active.Type()
		v.Form = c.active.Form(c.errs)
	}
	return v, nil
}
