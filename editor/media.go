package editor

import (
	"github.com/eringen/pagedesk/page"
	"github.com/eringen/pagedesk/validate"
)

// ImageEditor edits single-image pages.
type ImageEditor struct {
	base
	title string
	src   string
}

func (e *ImageEditor) Type() page.Type { return page.TypeImage }

func (e *ImageEditor) Present() Form {
	e.Reset()
	return e.Form(validate.Result{})
}

func (e *ImageEditor) Load(p page.Page) {
	e.bind(p)
	e.title = p.Title
	e.src = p.Src
}

func (e *ImageEditor) Reset() {
	e.unbind()
	e.title, e.src = "", ""
}

func (e *ImageEditor) SetField(k, value string) error {
	switch k {
	case keyTitle:
		e.title = value
	case keySrc:
		e.src = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (e *ImageEditor) Validate() validate.Result {
	var r validate.Result
	r.Require(keyTitle, "Title", e.title)
	r.Require(keySrc, "URL", e.src)
	return r
}

func (e *ImageEditor) CollectDraft() page.Page {
	return page.Page{
		ID:    e.id(),
		Type:  page.TypeImage,
		Title: trim(e.title),
		Src:   trim(e.src),
	}
}

func (e *ImageEditor) Form(errs validate.Result) Form {
	return Form{
		Type:    page.TypeImage,
		Heading: "Image",
		Fields: []Field{
			field(keyTitle, "Title", e.title, errs),
			field(keySrc, "Image URL", e.src, errs),
		},
	}
}

// VideoEditor edits video pages.
type VideoEditor struct {
	base
	title       string
	src         string
	contentType string
}

func (e *VideoEditor) Type() page.Type { return page.TypeVideo }

func (e *VideoEditor) Present() Form {
	e.Reset()
	return e.Form(validate.Result{})
}

func (e *VideoEditor) Load(p page.Page) {
	e.bind(p)
	e.title = p.Title
	e.src = p.Src
	e.contentType = p.ContentType
}

func (e *VideoEditor) Reset() {
	e.unbind()
	e.title, e.src, e.contentType = "", "", ""
}

func (e *VideoEditor) SetField(k, value string) error {
	switch k {
	case keyTitle:
		e.title = value
	case keySrc:
		e.src = value
	case keyContentType:
		e.contentType = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (e *VideoEditor) Validate() validate.Result {
	var r validate.Result
	r.Require(keyTitle, "Title", e.title)
	r.Require(keySrc, "URL", e.src)
	r.Require(keyContentType, "Content-type", e.contentType)
	return r
}

func (e *VideoEditor) CollectDraft() page.Page {
	return page.Page{
		ID:          e.id(),
		Type:        page.TypeVideo,
		Title:       trim(e.title),
		Src:         trim(e.src),
		ContentType: trim(e.contentType),
	}
}

func (e *VideoEditor) Form(errs validate.Result) Form {
	ct := field(keyContentType, "Content-Type", e.contentType, errs)
	ct.Placeholder = "video/mp4"
	return Form{
		Type:    page.TypeVideo,
		Heading: "Video",
		Fields: []Field{
			field(keyTitle, "Title", e.title, errs),
			field(keySrc, "Video URL", e.src, errs),
			ct,
		},
	}
}
