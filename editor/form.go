package editor

import (
	"strings"

	"github.com/eringen/pagedesk/page"
)

// Field is one editable input of a form.
type Field struct {
	Key         string
	Label       string
	Value       string
	Error       string
	Placeholder string
	Multiline   bool
}

// Item is one row of a List.
type Item struct {
	Handle Handle
	Fields []Field
	Lists  []List
}

// List is a nested, dynamically sized group of rows. Parent is set for lists
// owned by a row of an outer list.
type List struct {
	Name     string
	Label    string
	AddLabel string
	Parent   Handle
	Items    []Item
}

// Form is the view-model an editor produces for its current state. The
// presentation layer turns it into markup.
type Form struct {
	Type    page.Type
	Heading string
	Fields  []Field
	Lists   []List
}

// Field finds the field with key anywhere in the form.
func (f Form) Field(key string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Key == key {
			return fld, true
		}
	}
	return findInLists(f.Lists, key)
}

// Errors lists every field carrying a message, depth first.
func (f Form) Errors() []Field {
	var out []Field
	for _, fld := range f.Fields {
		if fld.Error != "" {
			out = append(out, fld)
		}
	}
	return appendListErrors(out, f.Lists)
}

func findInLists(lists []List, key string) (Field, bool) {
	for _, l := range lists {
		for _, it := range l.Items {
			for _, fld := range it.Fields {
				if fld.Key == key {
					return fld, true
				}
			}
			if fld, ok := findInLists(it.Lists, key); ok {
				return fld, true
			}
		}
	}
	return Field{}, false
}

func appendListErrors(out []Field, lists []List) []Field {
	for _, l := range lists {
		for _, it := range l.Items {
			for _, fld := range it.Fields {
				if fld.Error != "" {
					out = append(out, fld)
				}
			}
			out = appendListErrors(out, it.Lists)
		}
	}
	return out
}

// joinKey joins nested field key segments: joinKey("slides", h, "title").
func joinKey(parts ...string) string {
	return strings.Join(parts, ".")
}

// splitKey breaks a nested key into its segments.
func splitKey(k string) []string {
	return strings.Split(k, ".")
}
