package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/listview"
)

// ErrInvalidForm is returned by Submit when a field failed validation. The
// field messages are on the form.
var ErrInvalidForm = errors.New("form has invalid fields")

// FormMode tells a create form from an edit form.
type FormMode int

const (
	CreateMode FormMode = iota
	EditMode
)

func (m FormMode) String() string {
	if m == EditMode {
		return "edit"
	}
	return "create"
}

// FormField is one input of an edit or create form.
type FormField struct {
	Key   string
	Label string
	Kind  listview.Kind
	Rules string
	Value string
	Error string
}

// Form is the state of an open edit or create form. Key is empty for
// create forms.
type Form struct {
	Mode    FormMode
	Key     string
	Title   string
	Subject string // names the record in notifications
	Fields  []FormField
}

// Set replaces the input of one field and clears its error.
func (f *Form) Set(key, value string) {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			f.Fields[i].Value = value
			f.Fields[i].Error = ""
			return
		}
	}
}

// Get returns the current input of one field.
func (f *Form) Get(key string) string {
	for _, field := range f.Fields {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// Valid reports whether no field carries an error.
func (f *Form) Valid() bool {
	for _, field := range f.Fields {
		if field.Error != "" {
			return false
		}
	}
	return true
}

var validate = validator.New()

// EditForm opens a form pre-filled from the loaded record.
func (p *Page[E]) EditForm(key string) (*Form, error) {
	if p.loading() {
		return nil, ErrLoading
	}
	e, ok := p.record(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, key)
	}
	subject := p.subject([]string{key})
	form := &Form{Mode: EditMode, Key: key, Title: "Edit " + subject, Subject: subject}
	for _, f := range p.def.Schema.Editable() {
		form.Fields = append(form.Fields, FormField{
			Key:   f.Key,
			Label: f.Label,
			Kind:  f.Kind,
			Rules: f.Rules,
			Value: f.Get(e).String(),
		})
	}
	return form, nil
}

// CreateForm opens an empty form for a new record.
func (p *Page[E]) CreateForm() (*Form, error) {
	if p.loading() {
		return nil, ErrLoading
	}
	noun := singular(p.def.Title)
	form := &Form{Mode: CreateMode, Title: "New " + noun, Subject: strings.ToLower(noun)}
	for _, f := range p.def.Schema.Editable() {
		form.Fields = append(form.Fields, FormField{Key: f.Key, Label: f.Label, Kind: f.Kind, Rules: f.Rules})
	}
	return form, nil
}

// Submit validates the form and sends it. Invalid input never reaches the
// network. On success, and when an edited record turns out to be gone, the
// collection is re-fetched; the caller closes the form unless an error other
// than backoffice.ErrNotFound is returned.
func (p *Page[E]) Submit(ctx context.Context, form *Form) error {
	if form == nil {
		return fmt.Errorf("no form open")
	}
	if p.loading() {
		return ErrLoading
	}
	body, ok := p.payload(form)
	if !ok {
		return ErrInvalidForm
	}

	var err error
	if form.Mode == EditMode {
		err = p.deps.Mutator.Update(ctx, p.def.Resource, p.owner(), form.Key, body)
	} else {
		err = p.deps.Mutator.Create(ctx, p.def.Resource, p.owner(), body)
	}

	switch {
	case err == nil:
		p.log.Info("record saved", "mode", form.Mode, "key", form.Key)
		if form.Mode == EditMode {
			p.setToast(ToastInfo, "Saved "+form.Subject)
		} else {
			p.setToast(ToastInfo, "Created "+form.Subject)
		}
	case form.Mode == EditMode && errors.Is(err, backoffice.ErrNotFound):
		// The record was deleted elsewhere; the edit is discarded.
		p.log.Warn("edited record no longer exists", "key", form.Key)
		p.setToast(ToastError, "That record no longer exists; your changes were discarded")
	default:
		p.log.Error("save failed", "key", form.Key, "error", err)
		p.setToast(ToastError, "Could not save: "+backoffice.UserMessage(err))
		return err
	}
	_ = p.Refresh(ctx)
	return err
}

// payload validates every field and builds the request body keyed by wire
// names. Field errors are written onto the form.
func (p *Page[E]) payload(form *Form) (map[string]any, bool) {
	body := make(map[string]any, len(form.Fields))
	ok := true
	for i := range form.Fields {
		field := &form.Fields[i]
		def, known := p.def.Schema.Field(field.Key)
		if !known || !def.Editable {
			continue
		}
		value, msg := parseInput(def.Kind, def.Rules, field.Value)
		field.Error = msg
		if msg != "" {
			ok = false
			continue
		}
		body[def.Wire] = value
	}
	return body, ok
}

// parseInput converts text into the wire value for kind and checks rules.
// Empty input is checked as an empty string so "required" and "omitempty"
// behave the same for every kind.
func parseInput(kind listview.Kind, rules, input string) (any, string) {
	text := strings.TrimSpace(input)
	if text == "" {
		if msg := check("", rules); msg != "" {
			return nil, msg
		}
		if kind == listview.KindText {
			return "", ""
		}
		return nil, ""
	}

	var value, checked any
	switch kind {
	case listview.KindNumber, listview.KindDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, "must be a number"
		}
		value, checked = json.Number(d.String()), d.InexactFloat64()
	case listview.KindDate:
		t, err := parseDate(text)
		if err != nil {
			return nil, "must be a date like 2025-01-31 or 2025-01-31 14:30"
		}
		value, checked = t.Format(time.RFC3339), t
	case listview.KindBool:
		b, err := parseBool(text)
		if err != nil {
			return nil, "must be yes or no"
		}
		value, checked = b, b
	default:
		value, checked = text, text
	}
	if msg := check(checked, rules); msg != "" {
		return nil, msg
	}
	return value, ""
}

func check(value any, rules string) string {
	if rules == "" {
		return ""
	}
	err := validate.Var(value, rules)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	_, isString := value.(string)
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte", "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "lte", "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "e164":
		return "must be a phone number like +15551234567"
	case "alphanumunicode", "alphanum":
		return "must contain only letters and digits"
	}
	return "fails " + fe.Tag()
}

func parseDate(text string) (time.Time, error) {
	for _, layout := range []string{listview.DateLayout, "2006-01-02 15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

func parseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized boolean %q", text)
}

func singular(title string) string {
	switch {
	case strings.HasSuffix(title, "ies"):
		return strings.TrimSuffix(title, "ies") + "y"
	case strings.HasSuffix(title, "s"):
		return strings.TrimSuffix(title, "s")
	}
	return title
}
