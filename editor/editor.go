// Package editor implements page authoring: one editor per page type, the
// registry resolving a type tag to its editor, and the Controller state
// machine that owns the single active editor.
package editor

import (
	"errors"
	"strings"
	"time"

	"github.com/eringen/pagedesk/page"
	"github.com/eringen/pagedesk/validate"
)

var (
	// ErrUnknownType is returned when resolving a tag outside the five page
	// types. It indicates a data or programming error.
	ErrUnknownType = errors.New("unknown page type")
	// ErrUnknownField is returned by SetField for keys the editor does not own.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownHandle is returned when a row handle is not in the collection.
	ErrUnknownHandle = errors.New("unknown row handle")
	// ErrUnknownList is returned by AddItem for list names the editor lacks.
	ErrUnknownList = errors.New("unknown list")
)

// PageEditor is the capability set every page type implements.
type PageEditor interface {
	Type() page.Type
	// Present clears the editor, unbinds any loaded page and returns the
	// blank form.
	Present() Form
	// Load binds p and fills the editable state from it.
	Load(p page.Page)
	// Reset clears editable state and unbinds any loaded page.
	Reset()
	// Validate checks every field and never fails short of a full pass.
	Validate() validate.Result
	// CollectDraft reads the editable state into a page record. It does not
	// persist and assumes Validate passed.
	CollectDraft() page.Page
	// Form renders the current state with errs attached to their fields.
	Form(errs validate.Result) Form
	// SetField sets the value of one field, nested keys included.
	SetField(key, value string) error
	// Bound returns the loaded page, if any.
	Bound() (page.Page, bool)
}

// ListEditor is implemented by editors owning nested collections.
type ListEditor interface {
	// AddItem appends a blank row to list. Lists nested under a row take
	// that row's handle as parent.
	AddItem(list string, parent Handle) (Handle, error)
	// RemoveItem deletes the row h from whichever list holds it.
	RemoveItem(h Handle) error
}

// deps are the generators shared by all editors of a registry.
type deps struct {
	newID     func() string
	now       func() time.Time
	newHandle func() Handle
}

// base carries the bound-page bookkeeping common to every editor.
type base struct {
	deps
	bound *page.Page
}

func (b *base) bind(p page.Page) {
	b.bound = &p
}

func (b *base) unbind() {
	b.bound = nil
}

func (b *base) Bound() (page.Page, bool) {
	if b.bound == nil {
		return page.Page{}, false
	}
	return *b.bound, true
}

// id reuses the bound page id or mints a new one.
func (b *base) id() string {
	if b.bound != nil {
		return b.bound.ID
	}
	return b.newID()
}

func field(k, label, value string, errs validate.Result) Field {
	return Field{Key: k, Label: label, Value: value, Error: errs.Error(k)}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
