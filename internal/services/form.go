package services

import (
	"strconv"
	"time"

	"wordraffle/internal/models"
)

// FormState is the validation state of the raffle form.
type FormState int

const (
	StateValid FormState = iota
	StateInvalid
)

func (s FormState) String() string {
	if s == StateInvalid {
		return "invalid"
	}
	return "valid"
}

// Form holds the raw field text and its validation outcome.
type Form struct {
	Raw   string
	Value int
	State FormState
	Err   error
}

// NewForm returns the form as it is first shown.
func NewForm() Form {
	return Form{
		Raw:   strconv.Itoa(models.DefaultNumberOfWords),
		Value: models.DefaultNumberOfWords,
		State: StateValid,
	}
}

// Apply validates raw and returns the next form state. It does not modify f.
func (f Form) Apply(raw string) Form {
	n, err := ValidateNumberOfWords(raw)
	if err != nil {
		return Form{Raw: raw, State: StateInvalid, Err: err}
	}
	return Form{Raw: raw, Value: n, State: StateValid}
}

// Message is the text shown under the field, empty when the form is valid.
func (f Form) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Session is one browser's form and its latest result.
type Session struct {
	Form         Form
	Result       *models.RaffleResult
	LastActivity time.Time
}

// Blur validates raw without drawing. The result is left untouched.
func (s *Session) Blur(raw string) {
	s.Form = s.Form.Apply(raw)
}

// Submit validates raw and, only when the form becomes valid, replaces the
// result with a fresh draw. A validation failure keeps the previous result.
func (s *Session) Submit(raw string, engine *RaffleEngine) error {
	s.Form = s.Form.Apply(raw)
	if s.Form.State == StateInvalid {
		return s.Form.Err
	}

	result, err := engine.Draw(s.Form.Value)
	if err != nil {
		return err
	}
	s.Result = result
	return nil
}
