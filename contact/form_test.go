package contact

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/termfolio/render"
)

type cueRecorder struct {
	chimes, errors int
}

func (c *cueRecorder) PlayTick() {}
func (c *cueRecorder) PlaySwoosh() {}
func (c *cueRecorder) StopSwoosh() {}
func (c *cueRecorder) PlayChime() { c.chimes++ }
func (c *cueRecorder) PlayError() { c.errors++ }

func typeInto(f *Form, id FieldID, s string) {
	f.SetFocus(id)
	for _, r := range s {
		f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func fillValid(f *Form) {
	typeInto(f, FirstName, "Ada")
	typeInto(f, LastName, "Lovelace")
	typeInto(f, Email, "ada@example.com")
	typeInto(f, Subject, "Engines")
	typeInto(f, Message, "About the analytical engine.")
}

func TestFieldEditing(t *testing.T) {
	fld := NewField("Name", false)
	for _, r := range "helo" {
		fld.Insert(r)
	}
	fld.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	fld.Insert('l')
	assert.Equal(t, "hello", fld.Value())
	assert.Equal(t, 4, fld.Cursor)

	assert.False(t, fld.Insert('\n'), "single-line field rejects newline")

	fld.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	fld.Insert(' ')
	for _, r := range "world" {
		fld.Insert(r)
	}
	assert.True(t, fld.DeleteWordBackward())
	assert.Equal(t, "hello ", fld.Value())

	fld.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	assert.True(t, fld.DeleteForward())
	assert.Equal(t, "ello ", fld.Value())
	assert.False(t, fld.DeleteBackward())

	fld.Cursor = 3
	assert.True(t, fld.DeleteToStart())
	assert.Equal(t, "o ", fld.Value())
	assert.Zero(t, fld.Cursor)
}

func TestFieldScrollFollowsCursor(t *testing.T) {
	fld := NewField("Subject", false)
	fld.SetValue("abcdefghijklmnop")
	fld.AdjustScroll(5)
	assert.Equal(t, 12, fld.Scroll)

	fld.Cursor = 2
	fld.AdjustScroll(5)
	assert.Equal(t, 2, fld.Scroll)
}

func TestValidateMessages(t *testing.T) {
	f := NewForm(nil, nil, nil)
	typeInto(f, FirstName, "A")
	typeInto(f, Email, "not-an-email")
	typeInto(f, Subject, "Hi")
	typeInto(f, Message, "short")

	_, err := f.Validate()
	require.ErrorIs(t, err, ErrValidation)

	want := map[FieldID]string{
		FirstName: "First name must be at least 2 characters.",
		LastName:  "Last name must be at least 2 characters.",
		Email:     "Please enter a valid email address.",
		Subject:   "Subject must be at least 5 characters.",
		Message:   "Message must be at least 10 characters.",
	}
	assert.Equal(t, want, f.Errors())
}

func TestValidateMessageTooLong(t *testing.T) {
	f := NewForm(nil, nil, nil)
	fillValid(f)
	long := make([]rune, MaxMessage+1)
	for i := range long {
		long[i] = 'x'
	}
	f.Field(Message).SetValue(string(long))

	_, err := f.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Message must not be longer than 500 characters.", f.Error(Message))
	assert.Len(t, f.Errors(), 1)
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"ada@example.com":       true,
		"first.last@sub.io":     true,
		"":                      false,
		"ada@":                  false,
		"ada@example":           false,
		"ada@example.":          false,
		"Ada <ada@example.com>": false,
		"ada example@x.com":     false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidEmail(in), in)
	}
}

func TestSubmitAcknowledgesAndResets(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cues := &cueRecorder{}
	toaster := render.NewToaster(0)
	f := NewForm(zap.New(core), cues, toaster)

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.newID = func() uuid.UUID { return id }
	f.now = func() time.Time { return at }

	fillValid(f)
	sub, err := f.Submit()
	require.NoError(t, err)

	assert.Equal(t, id, sub.ID)
	assert.Equal(t, at, sub.At)
	assert.Equal(t, "Ada", sub.FirstName)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.Equal(t, 1, cues.chimes)
	assert.Equal(t, 1, f.Sent())

	toast, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, render.ToastSuccess, toast.Severity)
	assert.Equal(t, SentTitle, toast.Title)
	assert.Equal(t, SentBody, toast.Body)

	entries := logs.FilterMessage("contact form submitted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id.String(), entries[0].ContextMap()["id"])

	for _, fld := range f.Fields() {
		assert.Empty(t, fld.Value())
	}
	assert.Equal(t, FirstName, f.Focus())
}

func TestSubmitRejectedKeepsValues(t *testing.T) {
	cues := &cueRecorder{}
	toaster := render.NewToaster(0)
	f := NewForm(nil, cues, toaster)
	fillValid(f)
	f.Field(Subject).SetValue("Hey")
	f.SetFocus(Message)

	_, err := f.Submit()
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, cues.errors)
	assert.Zero(t, cues.chimes)
	assert.Equal(t, Subject, f.Focus(), "focus jumps to the first invalid field")
	assert.Equal(t, "Ada", f.Field(FirstName).Value())
	_, shown := toaster.Current()
	assert.False(t, shown)

	// Editing the field clears its message
	typeInto(f, Subject, "!!")
	assert.Empty(t, f.Error(Subject))
}

func TestHandleKeyNavigation(t *testing.T) {
	f := NewForm(nil, nil, nil)
	key := func(k tcell.Key, mod tcell.ModMask) Action {
		return f.HandleKey(tcell.NewEventKey(k, 0, mod))
	}

	assert.Equal(t, ActionLeave, key(tcell.KeyBacktab, tcell.ModNone))
	assert.Equal(t, ActionFocus, key(tcell.KeyTab, tcell.ModNone))
	assert.Equal(t, LastName, f.Focus())
	assert.Equal(t, ActionFocus, key(tcell.KeyEnter, tcell.ModNone))
	assert.Equal(t, Email, f.Focus())
	assert.Equal(t, ActionLeave, key(tcell.KeyEscape, tcell.ModNone))

	f.SetFocus(Message)
	assert.Equal(t, ActionEdited, key(tcell.KeyEnter, tcell.ModAlt))
	assert.Equal(t, "\n", f.Field(Message).Value())
	assert.Equal(t, ActionRejected, key(tcell.KeyEnter, tcell.ModNone))

	fillValid(f)
	f.Field(Message).SetValue("About the analytical engine.")
	assert.Equal(t, ActionSubmitted, key(tcell.KeyCtrlS, tcell.ModNone))
	assert.Equal(t, 1, f.Sent())
}
