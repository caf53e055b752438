package editor

import (
	"time"

	"github.com/eringen/pagedesk/page"
	"github.com/eringen/pagedesk/validate"
)

const (
	keyTitle       = "title"
	keyContent     = "content"
	keySrc         = "src"
	keyContentType = "contentType"
	keyDescription = "description"
)

// PostEditor edits text posts.
type PostEditor struct {
	base
	title   string
	content string
}

func (e *PostEditor) Type() page.Type { return page.TypePost }

func (e *PostEditor) Present() Form {
	e.Reset()
	return e.Form(validate.Result{})
}

func (e *PostEditor) Load(p page.Page) {
	e.bind(p)
	e.title = p.Title
	e.content = p.Content
}

func (e *PostEditor) Reset() {
	e.unbind()
	e.title, e.content = "", ""
}

func (e *PostEditor) SetField(k, value string) error {
	switch k {
	case keyTitle:
		e.title = value
	case keyContent:
		e.content = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (e *PostEditor) Validate() validate.Result {
	var r validate.Result
	r.Require(keyTitle, "Title", e.title)
	r.Require(keyContent, "Content", e.content)
	return r
}

// CollectDraft stamps Created with the current time for new posts and keeps
// the original timestamp of a bound post.
func (e *PostEditor) CollectDraft() page.Page {
	created := ""
	if e.bound != nil {
		created = e.bound.Created
	}
	if created == "" {
		created = e.now().UTC().Format(time.RFC3339)
	}
	return page.Page{
		ID:      e.id(),
		Type:    page.TypePost,
		Title:   trim(e.title),
		Content: trim(e.content),
		Created: created,
	}
}

func (e *PostEditor) Form(errs validate.Result) Form {
	content := field(keyContent, "Content", e.content, errs)
	content.Multiline = true
	return Form{
		Type:    page.TypePost,
		Heading: "Post",
		Fields: []Field{
			field(keyTitle, "Title", e.title, errs),
			content,
		},
	}
}
