// Package page defines the typed page records authored in the admin and
// rendered on the public site.
package page

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned by stores when a page id has no record.
var ErrNotFound = errors.New("page not found")

// Type discriminates the page union.
type Type string

const (
	TypePost      Type = "post"
	TypeImage     Type = "image"
	TypeVideo     Type = "video"
	TypeSlideshow Type = "slideshow"
	TypeQuiz      Type = "quiz"
)

// Types lists every page type in the order the admin selector offers them.
func Types() []Type {
	return []Type{TypePost, TypeImage, TypeSlideshow, TypeQuiz, TypeVideo}
}

// Valid reports whether t is one of the five known tags.
func (t Type) Valid() bool {
	switch t {
	case TypePost, TypeImage, TypeVideo, TypeSlideshow, TypeQuiz:
		return true
	}
	return false
}

// Label is the human name of the type, e.g. "Slideshow".
func (t Type) Label() string {
	switch t {
	case TypePost:
		return "Post"
	case TypeImage:
		return "Image"
	case TypeVideo:
		return "Video"
	case TypeSlideshow:
		return "Slideshow"
	case TypeQuiz:
		return "Quiz"
	}
	return string(t)
}

// Slide is one titled image of a slideshow.
type Slide struct {
	Title string `json:"title"`
	Src   string `json:"src"`
}

// Question is one quiz question. CorrectIndex is zero-based into Options.
type Question struct {
	Text         string   `json:"text"`
	CorrectIndex int      `json:"correctIndex"`
	Options      []string `json:"options"`
}

// Page is a persisted content record. Only the payload fields belonging to
// Type are meaningful; the JSON form carries exactly those.
type Page struct {
	ID    string
	Type  Type
	Title string

	// post
	Content string
	Created string

	// image, video
	Src string
	// video
	ContentType string

	// slideshow
	Images []Slide

	// quiz
	Description string
	Questions   []Question
}

// Summary is the listing projection of a page.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  Type   `json:"type"`
}

// Summary projects p to its listing form.
func (p Page) Summary() Summary {
	return Summary{ID: p.ID, Title: p.Title, Type: p.Type}
}

type postJSON struct {
	ID      string `json:"id"`
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Created string `json:"created"`
}

type imageJSON struct {
	ID    string `json:"id"`
	Type  Type   `json:"type"`
	Title string `json:"title"`
	Src   string `json:"src"`
}

type videoJSON struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Src         string `json:"src"`
	ContentType string `json:"contentType"`
}

type slideshowJSON struct {
	ID     string  `json:"id"`
	Type   Type    `json:"type"`
	Title  string  `json:"title"`
	Images []Slide `json:"images"`
}

type quizJSON struct {
	ID             string     `json:"id"`
	Type           Type       `json:"type"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Questions      []Question `json:"questions"`
	CurrentAnswers []any      `json:"currentAnswers"`
	Answers        []any      `json:"answers"`
}

// MarshalJSON writes the common fields plus the payload of p.Type only.
// Quiz records always carry empty currentAnswers and answers arrays.
func (p Page) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case TypePost:
		return json.Marshal(postJSON{p.ID, p.Type, p.Title, p.Content, p.Created})
	case TypeImage:
		return json.Marshal(imageJSON{p.ID, p.Type, p.Title, p.Src})
	case TypeVideo:
		return json.Marshal(videoJSON{p.ID, p.Type, p.Title, p.Src, p.ContentType})
	case TypeSlideshow:
		images := p.Images
		if images == nil {
			images = []Slide{}
		}
		return json.Marshal(slideshowJSON{p.ID, p.Type, p.Title, images})
	case TypeQuiz:
		questions := make([]Question, len(p.Questions))
		for i, q := range p.Questions {
			if q.Options == nil {
				q.Options = []string{}
			}
			questions[i] = q
		}
		return json.Marshal(quizJSON{
			ID:             p.ID,
			Type:           p.Type,
			Title:          p.Title,
			Description:    p.Description,
			Questions:      questions,
			CurrentAnswers: []any{},
			Answers:        []any{},
		})
	}
	return nil, fmt.Errorf("page %s: unknown type %q", p.ID, p.Type)
}

// UnmarshalJSON reads any of the five record shapes.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string     `json:"id"`
		Type        Type       `json:"type"`
		Title       string     `json:"title"`
		Content     string     `json:"content"`
		Created     string     `json:"created"`
		Src         string     `json:"src"`
		ContentType string     `json:"contentType"`
		Images      []Slide    `json:"images"`
		Description string     `json:"description"`
		Questions   []Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Type.Valid() {
		return fmt.Errorf("page %s: unknown type %q", raw.ID, raw.Type)
	}
	*p = Page{
		ID:          raw.ID,
		Type:        raw.Type,
		Title:       raw.Title,
		Content:     raw.Content,
		Created:     raw.Created,
		Src:         raw.Src,
		ContentType: raw.ContentType,
		Images:      raw.Images,
		Description: raw.Description,
		Questions:   raw.Questions,
	}
	return nil
}

// NewID returns a random 32-bit value rendered as a decimal string.
// Ids are not checked against existing records.
func NewID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("page: read random id: %v", err))
	}
	return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(b[:])), 10)
}
