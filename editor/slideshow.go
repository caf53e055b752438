package editor

import (
	"fmt"

	"github.com/eringen/pagedesk/page"
	"github.com/eringen/pagedesk/validate"
)

const listSlides = "slides"

// SlideshowEditor edits slideshows: a title plus an ordered list of slides.
// A slideshow with no slides passes validation.
type SlideshowEditor struct {
	base
	title  string
	slides *Collection[page.Slide]
}

func newSlideshowEditor(d deps) *SlideshowEditor {
	return &SlideshowEditor{
		base:   base{deps: d},
		slides: NewCollection[page.Slide](d.newHandle),
	}
}

func (e *SlideshowEditor) Type() page.Type { return page.TypeSlideshow }

func (e *SlideshowEditor) Present() Form {
	e.Reset()
	return e.Form(validate.Result{})
}

func (e *SlideshowEditor) Load(p page.Page) {
	e.Reset()
	e.bind(p)
	e.title = p.Title
	for _, s := range p.Images {
		e.slides.Add(s)
	}
}

func (e *SlideshowEditor) Reset() {
	e.unbind()
	e.title = ""
	e.slides.Clear()
}

// AddItem appends a blank slide. Slides have no nested lists, so parent must
// be empty.
func (e *SlideshowEditor) AddItem(list string, parent Handle) (Handle, error) {
	if list != listSlides || parent != "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownList, list)
	}
	return e.slides.Add(page.Slide{}), nil
}

func (e *SlideshowEditor) RemoveItem(h Handle) error {
	if !e.slides.Remove(h) {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return nil
}

// SetField accepts "title", "slides.<h>.title" and "slides.<h>.src".
func (e *SlideshowEditor) SetField(k, value string) error {
	if k == keyTitle {
		e.title = value
		return nil
	}
	parts := splitKey(k)
	if len(parts) != 3 || parts[0] != listSlides {
		return ErrUnknownField
	}
	var set func(*page.Slide)
	switch parts[2] {
	case keyTitle:
		set = func(s *page.Slide) { s.Title = value }
	case keySrc:
		set = func(s *page.Slide) { s.Src = value }
	default:
		return ErrUnknownField
	}
	if !e.slides.Update(Handle(parts[1]), set) {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, parts[1])
	}
	return nil
}

// Validate checks the title and both fields of every slide; each offending
// slide field gets its own message.
func (e *SlideshowEditor) Validate() validate.Result {
	var r validate.Result
	r.Require(keyTitle, "Title", e.title)
	for _, row := range e.slides.Rows() {
		h := string(row.Handle)
		r.Require(joinKey(listSlides, h, keyTitle), "Title", row.Value.Title)
		r.Require(joinKey(listSlides, h, keySrc), "URL", row.Value.Src)
	}
	return r
}

func (e *SlideshowEditor) CollectDraft() page.Page {
	slides := e.slides.Enumerate()
	images := make([]page.Slide, len(slides))
	for i, s := range slides {
		images[i] = page.Slide{Title: trim(s.Title), Src: trim(s.Src)}
	}
	return page.Page{
		ID:     e.id(),
		Type:   page.TypeSlideshow,
		Title:  trim(e.title),
		Images: images,
	}
}

func (e *SlideshowEditor) Form(errs validate.Result) Form {
	list := List{Name: listSlides, Label: "Slideshow Images", AddLabel: "Add Slide"}
	for _, row := range e.slides.Rows() {
		h := string(row.Handle)
		t := field(joinKey(listSlides, h, keyTitle), "Title", row.Value.Title, errs)
		t.Placeholder = "Title"
		u := field(joinKey(listSlides, h, keySrc), "URL", row.Value.Src, errs)
		u.Placeholder = "URL"
		list.Items = append(list.Items, Item{Handle: row.Handle, Fields: []Field{t, u}})
	}
	return Form{
		Type:    page.TypeSlideshow,
		Heading: "Slideshow",
		Fields:  []Field{field(keyTitle, "Title", e.title, errs)},
		Lists:   []List{list},
	}
}
