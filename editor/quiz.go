package editor

import (
	"fmt"
	"strconv"

	"github.com/eringen/pagedesk/page"
	"github.com/eringen/pagedesk/validate"
)

const (
	listQuestions = "questions"
	listAnswers   = "answers"

	keyText    = "text"
	keyCorrect = "correct"
)

// QuestionRow is the editable state of one quiz question. Correct holds the
// 1-based answer number as typed by the user.
type QuestionRow struct {
	Text    string
	Correct string
	Answers *Collection[string]
}

// QuizEditor edits quizzes: title, description and an ordered list of
// questions, each owning an ordered list of answers.
type QuizEditor struct {
	base
	title       string
	description string
	questions   *Collection[*QuestionRow]
}

func newQuizEditor(d deps) *QuizEditor {
	return &QuizEditor{
		base:      base{deps: d},
		questions: NewCollection[*QuestionRow](d.newHandle),
	}
}

func (e *QuizEditor) Type() page.Type { return page.TypeQuiz }

func (e *QuizEditor) Present() Form {
	e.Reset()
	return e.Form(validate.Result{})
}

func (e *QuizEditor) Load(p page.Page) {
	e.Reset()
	e.bind(p)
	e.title = p.Title
	e.description = p.Description
	for _, q := range p.Questions {
		row := e.newQuestion()
		row.Text = q.Text
		row.Correct = strconv.Itoa(q.CorrectIndex + 1)
		for _, opt := range q.Options {
			row.Answers.Add(opt)
		}
		e.questions.Add(row)
	}
}

func (e *QuizEditor) Reset() {
	e.unbind()
	e.title, e.description = "", ""
	e.questions.Clear()
}

func (e *QuizEditor) newQuestion() *QuestionRow {
	return &QuestionRow{Answers: NewCollection[string](e.newHandle)}
}

// AddItem appends a blank question, or a blank answer to the question parent.
func (e *QuizEditor) AddItem(list string, parent Handle) (Handle, error) {
	switch {
	case list == listQuestions && parent == "":
		return e.questions.Add(e.newQuestion()), nil
	case list == listAnswers:
		q, ok := e.questions.Get(parent)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownHandle, parent)
		}
		return q.Answers.Add(""), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, list)
}

// RemoveItem removes the question or answer identified by h.
func (e *QuizEditor) RemoveItem(h Handle) error {
	if e.questions.Remove(h) {
		return nil
	}
	for _, q := range e.questions.Enumerate() {
		if q.Answers.Remove(h) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
}

// SetField accepts "title", "description", "questions.<q>.text",
// "questions.<q>.correct" and "questions.<q>.answers.<a>.text".
func (e *QuizEditor) SetField(k, value string) error {
	switch k {
	case keyTitle:
		e.title = value
		return nil
	case keyDescription:
		e.description = value
		return nil
	}
	parts := splitKey(k)
	if len(parts) < 3 || parts[0] != listQuestions {
		return ErrUnknownField
	}
	q, ok := e.questions.Get(Handle(parts[1]))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, parts[1])
	}
	switch {
	case len(parts) == 3 && parts[2] == keyText:
		q.Text = value
	case len(parts) == 3 && parts[2] == keyCorrect:
		q.Correct = value
	case len(parts) == 5 && parts[2] == listAnswers && parts[4] == keyText:
		if !q.Answers.Update(Handle(parts[3]), func(a *string) { *a = value }) {
			return fmt.Errorf("%w: %s", ErrUnknownHandle, parts[3])
		}
	default:
		return ErrUnknownField
	}
	return nil
}

// Validate checks title, description and every question and answer
// independently, so all problems surface in one pass.
func (e *QuizEditor) Validate() validate.Result {
	var r validate.Result
	r.Require(keyTitle, "Title", e.title)
	r.Require(keyDescription, "Description", e.description)
	for _, row := range e.questions.Rows() {
		qh := string(row.Handle)
		q := row.Value
		r.Require(joinKey(listQuestions, qh, keyText), "Question", q.Text)
		if err := validate.CorrectNumber(q.Correct, q.Answers.Len()); err != nil {
			r.Add(joinKey(listQuestions, qh, keyCorrect), validate.Message(err))
		}
		for _, a := range q.Answers.Rows() {
			r.Require(joinKey(listQuestions, qh, listAnswers, string(a.Handle), keyText), "Answer", a.Value)
		}
	}
	return r
}

// CollectDraft converts each entered answer number to a zero-based
// CorrectIndex. An unparsable number yields -1; callers validate first.
func (e *QuizEditor) CollectDraft() page.Page {
	rows := e.questions.Enumerate()
	questions := make([]page.Question, len(rows))
	for i, q := range rows {
		n, _ := strconv.Atoi(trim(q.Correct))
		answers := q.Answers.Enumerate()
		options := make([]string, len(answers))
		for j, a := range answers {
			options[j] = trim(a)
		}
		questions[i] = page.Question{
			Text:         trim(q.Text),
			CorrectIndex: n - 1,
			Options:      options,
		}
	}
	return page.Page{
		ID:          e.id(),
		Type:        page.TypeQuiz,
		Title:       trim(e.title),
		Description: trim(e.description),
		Questions:   questions,
	}
}

func (e *QuizEditor) Form(errs validate.Result) Form {
	questions := List{Name: listQuestions, Label: "Questions", AddLabel: "Add Question"}
	for _, row := range e.questions.Rows() {
		qh := string(row.Handle)
		text := field(joinKey(listQuestions, qh, keyText), "Question", row.Value.Text, errs)
		text.Placeholder = "Question text"
		correct := field(joinKey(listQuestions, qh, keyCorrect), "Correct Answer", row.Value.Correct, errs)
		correct.Placeholder = "Correct Answer"

		answers := List{Name: listAnswers, Label: "Answers", AddLabel: "Add Answer", Parent: row.Handle}
		for _, a := range row.Value.Answers.Rows() {
			af := field(joinKey(listQuestions, qh, listAnswers, string(a.Handle), keyText), "Answer", a.Value, errs)
			af.Placeholder = "Answer text"
			answers.Items = append(answers.Items, Item{Handle: a.Handle, Fields: []Field{af}})
		}
		questions.Items = append(questions.Items, Item{
			Handle: row.Handle,
			Fields: []Field{text, correct},
			Lists:  []List{answers},
		})
	}
	return Form{
		Type:    page.TypeQuiz,
		Heading: "Quiz",
		Fields: []Field{
			field(keyTitle, "Title", e.title, errs),
			field(keyDescription, "Description", e.description, errs),
		},
		Lists: []List{questions},
	}
}
