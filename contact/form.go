package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/render"
)

// ErrValidation reports a submission with at least one invalid field
var ErrValidation = errors.New("contact: invalid submission")

// FieldID indexes the form inputs in tab order
type FieldID int

const (
	FirstName FieldID = iota
	LastName
	Email
	Subject
	Message
	fieldCount
)

// Length rules
const (
	MinName    = 2
	MinSubject = 5
	MinMessage = 10
	MaxMessage = 500
)

// Toast text shown after a successful send
const (
	SentTitle = "Message sent successfully!"
	SentBody  = "Thanks for reaching out. I will get back to you shortly."
)

// Submission is a validated form snapshot
type Submission struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Subject   string
	Message   string
	At        time.Time
}

// Action tells the caller what a key did to the form
type Action int

const (
	ActionNone Action = iota
	ActionEdited
	ActionFocus
	ActionSubmitted
	ActionRejected
	ActionLeave
)

// Form is the contact form: five fields, a focus cursor, field errors
// Submission never leaves the process; it is logged and acknowledged
type Form struct {
	fields [fieldCount]*Field
	focus  FieldID
	errs   map[FieldID]string

	log   *zap.Logger
	cues  audio.Cues
	toast *render.Toaster
	now   func() time.Time
	newID func() uuid.UUID
	sent  int
}

// NewForm creates an empty form; cues and toaster may be nil
func NewForm(log *zap.Logger, cues audio.Cues, toaster *render.Toaster) *Form {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Form{
		errs:  make(map[FieldID]string),
		log:   log,
		cues:  cues,
		toast: toaster,
		now:   time.Now,
		newID: uuid.New,
	}
	f.fields[FirstName] = NewField("First name", false)
	f.fields[LastName] = NewField("Last name", false)
	f.fields[Email] = NewField("Email", false)
	f.fields[Subject] = NewField("Subject", false)
	f.fields[Message] = NewField("Message", true)
	return f
}

// --- Focus ---

// Field returns the input for id
func (f *Form) Field(id FieldID) *Field {
	return f.fields[id]
}

// Fields returns the inputs in tab order
func (f *Form) Fields() []*Field {
	return f.fields[:]
}

// Focus returns the focused field
func (f *Form) Focus() FieldID { return f.focus }

// SetFocus moves focus, ignoring unknown ids
func (f *Form) SetFocus(id FieldID) {
	if id >= 0 && id < fieldCount {
		f.focus = id
	}
}

// FocusNext moves focus forward, reports false when leaving the last field
func (f *Form) FocusNext() bool {
	if f.focus == fieldCount-1 {
		return false
	}
	f.focus++
	return true
}

// FocusPrev moves focus backward, reports false when leaving the first field
func (f *Form) FocusPrev() bool {
	if f.focus == 0 {
		return false
	}
	f.focus--
	return true
}

// --- Validation ---

// Errors returns the field messages of the last validation
func (f *Form) Errors() map[FieldID]string {
	out := make(map[FieldID]string, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Error returns the message for one field, empty when valid
func (f *Form) Error(id FieldID) string { return f.errs[id] }

// Validate checks every field and records field messages
func (f *Form) Validate() (Submission, error) {
	clear(f.errs)

	first := strings.TrimSpace(f.fields[FirstName].Value())
	last := strings.TrimSpace(f.fields[LastName].Value())
	email := strings.TrimSpace(f.fields[Email].Value())
	subject := strings.TrimSpace(f.fields[Subject].Value())
	msg := strings.TrimSpace(f.fields[Message].Value())

	if utf8.RuneCountInString(first) < MinName {
		f.errs[FirstName] = "First name must be at least 2 characters."
	}
	if utf8.RuneCountInString(last) < MinName {
		f.errs[LastName] = "Last name must be at least 2 characters."
	}
	if !ValidEmail(email) {
		f.errs[Email] = "Please enter a valid email address."
	}
	if utf8.RuneCountInString(subject) < MinSubject {
		f.errs[Subject] = "Subject must be at least 5 characters."
	}
	switch n := utf8.RuneCountInString(msg); {
	case n < MinMessage:
		f.errs[Message] = "Message must be at least 10 characters."
	case n > MaxMessage:
		f.errs[Message] = "Message must not be longer than 500 characters."
	}

	if len(f.errs) > 0 {
		return Submission{}, fmt.Errorf("%w: %d field(s)", ErrValidation, len(f.errs))
	}
	return Submission{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Subject:   subject,
		Message:   msg,
	}, nil
}

// ValidEmail accepts a bare address with a dotted domain
func ValidEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// --- Submission ---

// Submit validates, acknowledges and resets the form
// An invalid form keeps its values and reports ErrValidation
func (f *Form) Submit() (Submission, error) {
	sub, err := f.Validate()
	if err != nil {
		f.log.Debug("contact form rejected", zap.Int("invalid", len(f.errs)))
		if f.cues != nil {
			f.cues.PlayError()
		}
		if focus, ok := f.firstInvalid(); ok {
			f.focus = focus
		}
		return Submission{}, err
	}

	sub.ID = f.newID()
	sub.At = f.now()
	f.log.Info("contact form submitted",
		zap.String("id", sub.ID.String()),
		zap.String("first_name", sub.FirstName),
		zap.String("last_name", sub.LastName),
		zap.String("email", sub.Email),
		zap.String("subject", sub.Subject),
		zap.String("message", sub.Message),
		zap.Time("at", sub.At),
	)
	if f.cues != nil {
		f.cues.PlayChime()
	}
	if f.toast != nil {
		f.toast.Show(render.ToastSuccess, SentTitle, SentBody)
	}
	f.sent++
	f.Reset()
	return sub, nil
}

// Sent returns the number of accepted submissions
func (f *Form) Sent() int { return f.sent }

// Reset clears values, errors and focus
func (f *Form) Reset() {
	for _, fld := range f.fields {
		fld.Clear()
	}
	clear(f.errs)
	f.focus = FirstName
}

func (f *Form) firstInvalid() (FieldID, bool) {
	for id := FirstName; id < fieldCount; id++ {
		if _, bad := f.errs[id]; bad {
			return id, true
		}
	}
	return 0, false
}

// --- Input ---

// HandleKey routes a key to the focused field or the form itself
// Tab/Shift-Tab and Up/Down move focus, Enter advances and submits on the last field,
// Ctrl-S submits from anywhere, Esc leaves the form
func (f *Form) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ActionLeave
	case tcell.KeyTab, tcell.KeyDown:
		if f.FocusNext() {
			return ActionFocus
		}
		return ActionLeave
	case tcell.KeyBacktab, tcell.KeyUp:
		if f.FocusPrev() {
			return ActionFocus
		}
		return ActionLeave
	case tcell.KeyCtrlS:
		return f.submitAction()
	case tcell.KeyEnter:
		if ev.Modifiers()&tcell.ModAlt == 0 || !f.fields[f.focus].Multiline {
			if f.FocusNext() {
				return ActionFocus
			}
			return f.submitAction()
		}
	}

	if f.fields[f.focus].HandleKey(ev) {
		delete(f.errs, f.focus)
		return ActionEdited
	}
	return ActionNone
}

func (f *Form) submitAction() Action {
	if _, err := f.Submit(); err != nil {
		return ActionRejected
	}
	return ActionSubmitted
}
