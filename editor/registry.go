package editor

import (
	"fmt"
	"time"

	"github.com/eringen/pagedesk/page"
)

// Registry maps each page type to its editor. Editors are created once and
// reused; presenting an editor clears whatever it held before.
type Registry struct {
	post      *PostEditor
	image     *ImageEditor
	video     *VideoEditor
	slideshow *SlideshowEditor
	quiz      *QuizEditor
}

// RegistryOption configures the generators editors use.
type RegistryOption func(*deps)

// WithIDGenerator replaces page.NewID for new pages.
func WithIDGenerator(fn func() string) RegistryOption {
	return func(d *deps) { d.newID = fn }
}

// WithClock replaces time.Now for post timestamps.
func WithClock(fn func() time.Time) RegistryOption {
	return func(d *deps) { d.now = fn }
}

// WithHandleGenerator replaces NewHandle for collection rows.
func WithHandleGenerator(fn func() Handle) RegistryOption {
	return func(d *deps) { d.newHandle = fn }
}

// NewRegistry builds one editor per page type.
func NewRegistry(opts ...RegistryOption) *Registry {
	d := deps{newID: page.NewID, now: time.Now, newHandle: NewHandle}
	for _, opt := range opts {
		opt(&d)
	}
	return &Registry{
		post:      &PostEditor{base: base{deps: d}},
		image:     &ImageEditor{base: base{deps: d}},
		video:     &VideoEditor{base: base{deps: d}},
		slideshow: newSlideshowEditor(d),
		quiz:      newQuizEditor(d),
	}
}

// Resolve returns the editor for t. Any tag outside the five page types is
// an ErrUnknownType.
func (r *Registry) Resolve(t page.Type) (PageEditor, error) {
	switch t {
	case page.TypePost:
		return r.post, nil
	case page.TypeImage:
		return r.image, nil
	case page.TypeVideo:
		return r.video, nil
	case page.TypeSlideshow:
		return r.slideshow, nil
	case page.TypeQuiz:
		return r.quiz, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}
